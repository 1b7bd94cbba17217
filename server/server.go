// Package server is the HTTP surface of the show: session creation,
// the display's poll loop, recording uploads, and the live
// question/answer path.
package server

import (
	"net/http"

	show "github.com/magoslive/show-core/core"
	"github.com/magoslive/show-core/core/replies"
	"github.com/magoslive/show-core/core/speechtotext"
	"github.com/magoslive/show-core/core/texttospeech"
	"github.com/magoslive/show-core/core/uploads"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Dependencies are the collaborators the HTTP layer fronts.
// Synthesizer, Transcriber, and Replies may be nil when the
// corresponding upstream is not configured; the affected routes
// degrade instead of panicking.
type Dependencies struct {
	Sessions    *show.Store
	Uploads     *uploads.Store
	Synthesizer texttospeech.Synthesizer
	Transcriber speechtotext.Transcriber
	Replies     replies.Generator
}

type Server struct {
	cfg  Config
	deps Dependencies
}

func New(cfg Config, deps Dependencies) *Server {
	return &Server{cfg: cfg, deps: deps}
}

// Routes builds the full handler chain: API routes, static audio
// serving, CORS, and otelhttp instrumentation.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/session/create", s.handleCreateSession)
	mux.HandleFunc("POST /api/session/next", s.handleNextEvent)
	mux.HandleFunc("POST /api/audio/upload", s.handleUploadRecording)
	mux.HandleFunc("POST /api/stt", s.handleTranscribe)
	mux.HandleFunc("POST /api/reply", s.handleReply)
	mux.HandleFunc("POST /api/tts", s.handleSynthesize)
	mux.HandleFunc("GET /health", s.handleHealth)

	if s.deps.Uploads != nil {
		mux.Handle("GET /audio/", http.StripPrefix("/audio/",
			http.FileServer(http.Dir(s.deps.Uploads.Dir()))))
	}

	return otelhttp.NewHandler(s.corsMiddleware(mux), "show-server")
}

// corsMiddleware lets the separately hosted display and mic frontends
// call the API. Preflight requests never reach the mux, whose
// method-scoped patterns would reject OPTIONS.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
