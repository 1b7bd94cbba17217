package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	show "github.com/magoslive/show-core/core"
	"github.com/magoslive/show-core/core/replies"
	"github.com/magoslive/show-core/core/texttospeech"
)

const maxJSONBodyBytes = 1 << 20

type createSessionRequest struct {
	Pack         string             `json:"pack"`
	Participants []show.Participant `json:"participants"`
	Gifts        []show.Gift        `json:"gifts"`
	Settings     map[string]string  `json:"settings"`
	FrontendURL  string             `json:"frontend_url"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	TVURL     string `json:"tv_url"`
	MobileURL string `json:"mobile_url"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Participants) == 0 {
		writeError(w, http.StatusBadRequest, show.ErrNoParticipants.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.AssetTimeout)
	defer cancel()
	bundle := show.PrepareAssets(ctx, s.deps.Synthesizer, req.Participants)

	session, err := show.NewSession(show.CreateSessionInput{
		Pack:         req.Pack,
		Participants: req.Participants,
		Gifts:        req.Gifts,
		Settings:     req.Settings,
	}, show.WithAssets(bundle), show.WithTimings(s.cfg.Timings()))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.deps.Sessions.Publish(session)
	logger.InfoContext(ctx, "session created",
		"session_id", session.ID,
		"pack", session.Pack,
		"participants", len(session.Participants),
	)

	frontend := req.FrontendURL
	if frontend == "" {
		frontend = s.cfg.FrontendURL
	}
	frontend = strings.TrimSuffix(frontend, "/")

	writeJSON(w, http.StatusOK, createSessionResponse{
		SessionID: session.ID,
		TVURL:     fmt.Sprintf("%s/s/%s?mode=tv", frontend, session.ID),
		MobileURL: fmt.Sprintf("%s/s/%s?mode=mic", frontend, session.ID),
	})
}

type sessionRef struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleNextEvent(w http.ResponseWriter, r *http.Request) {
	var req sessionRef
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := s.deps.Sessions.Advance(req.SessionID)
	if errors.Is(err, show.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, event)
}

type uploadRecordingResponse struct {
	AudioID string `json:"audio_id"`
}

func (s *Server) handleUploadRecording(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, _, err := r.FormFile("audio_file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio_file is required")
		return
	}
	defer file.Close()

	id, err := s.deps.Uploads.SaveRecording(file)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to save recording", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save recording")
		return
	}

	writeJSON(w, http.StatusOK, uploadRecordingResponse{AudioID: id})
}

type transcribeRequest struct {
	SessionID string `json:"session_id"`
	AudioID   string `json:"audio_id"`
}

type transcribeResponse struct {
	Text string `json:"text"`
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	var req transcribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.deps.Sessions.Get(req.SessionID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if s.deps.Transcriber == nil {
		writeError(w, http.StatusServiceUnavailable, "transcription not configured")
		return
	}

	audio, err := s.deps.Uploads.ReadRecording(req.AudioID)
	if err != nil {
		writeError(w, http.StatusNotFound, "recording not found")
		return
	}

	text, err := s.deps.Transcriber.Transcribe(r.Context(), audio)
	if err != nil {
		logger.ErrorContext(r.Context(), "transcription failed", "error", err)
		writeError(w, http.StatusBadGateway, "transcription failed")
		return
	}

	writeJSON(w, http.StatusOK, transcribeResponse{Text: text})
}

type replyRequest struct {
	SessionID string `json:"session_id"`
	UserInput struct {
		Text string `json:"text"`
	} `json:"user_input"`
}

type replyResponse struct {
	SpokenText               string  `json:"spoken_text"`
	SubtitleText             string  `json:"subtitle_text"`
	AnimationCue             string  `json:"animation_cue"`
	ClassifiedIntent         string  `json:"classified_intent"`
	SafetyRedirectUsed       bool    `json:"safety_redirect_used"`
	TTSAudioURL              *string `json:"tts_audio_url"`
	DurationMS               int64   `json:"duration_ms"`
	NextPhaseSuggestion      string  `json:"next_phase_suggestion"`
	ShouldOpenQuestionWindow bool    `json:"should_open_question_window"`
}

// handleReply runs the live answer path: reserve the participant's
// question budget, generate the in-persona reply, and enqueue it for
// the display's next poll. The session phase is untouched here; only a
// poll observing the queued event moves the show into the answer.
func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	var req replyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.UserInput.Text) == "" {
		writeError(w, http.StatusBadRequest, "user_input.text is required")
		return
	}

	session, err := s.deps.Sessions.Get(req.SessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if s.deps.Replies == nil {
		writeError(w, http.StatusServiceUnavailable, "reply generation not configured")
		return
	}

	if err := session.ReserveQuestion(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	question := replies.Question{
		Text:    req.UserInput.Text,
		Speaker: session.CurrentSpeaker(),
	}
	if participant, ok := session.CurrentParticipant(); ok {
		question.ParticipantName = participant.Name
		question.AgeGroup = participant.AgeGroup
	}

	reply, err := s.deps.Replies.GenerateReply(r.Context(), question)
	if err != nil {
		logger.ErrorContext(r.Context(), "reply generation failed", "error", err)
		writeError(w, http.StatusBadGateway, "reply generation failed")
		return
	}

	event := reply.Event(question.Speaker)
	session.EnqueueAnswer(event)
	logger.InfoContext(r.Context(), "answer enqueued",
		"session_id", session.ID,
		"speaker", question.Speaker,
		"intent", reply.ClassifiedIntent,
	)

	writeJSON(w, http.StatusOK, replyResponse{
		SpokenText:               reply.SpokenText,
		SubtitleText:             reply.SubtitleText,
		AnimationCue:             string(reply.AnimationCue),
		ClassifiedIntent:         reply.ClassifiedIntent,
		SafetyRedirectUsed:       reply.SafetyRedirectUsed,
		TTSAudioURL:              event.AudioURL,
		DurationMS:               reply.DurationMS,
		NextPhaseSuggestion:      string(show.PhaseGiftReveal),
		ShouldOpenQuestionWindow: false,
	})
}

type synthesizeRequest struct {
	SessionID string `json:"session_id"`
	VoiceID   string `json:"voice_id"`
	Text      string `json:"text"`
}

type synthesizeResponse struct {
	TTSAudioURL string `json:"tts_audio_url"`
	DurationMS  int64  `json:"duration_ms"`
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if s.deps.Synthesizer == nil {
		writeError(w, http.StatusServiceUnavailable, "synthesis not configured")
		return
	}

	var opts []texttospeech.SynthesizeOption
	if req.VoiceID != "" {
		opts = append(opts, texttospeech.WithVoice(req.VoiceID))
	}

	speech, err := s.deps.Synthesizer.Synthesize(r.Context(), req.Text, opts...)
	if err != nil {
		logger.ErrorContext(r.Context(), "synthesis failed", "error", err)
		writeError(w, http.StatusBadGateway, "synthesis failed")
		return
	}

	writeJSON(w, http.StatusOK, synthesizeResponse{
		TTSAudioURL: speech.AudioURL,
		DurationMS:  speech.DurationMS,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
