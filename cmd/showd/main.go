package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	show "github.com/magoslive/show-core/core"
	"github.com/magoslive/show-core/core/llms/groq"
	"github.com/magoslive/show-core/core/replies"
	replyllm "github.com/magoslive/show-core/core/replies/llm"
	"github.com/magoslive/show-core/core/speechtotext"
	sttdeepgram "github.com/magoslive/show-core/core/speechtotext/deepgram"
	"github.com/magoslive/show-core/core/texttospeech"
	ttsdeepgram "github.com/magoslive/show-core/core/texttospeech/deepgram"
	"github.com/magoslive/show-core/core/uploads"
	"github.com/magoslive/show-core/server"
)

const (
	readHeaderTimeout    = 5 * time.Second
	readTimeout          = 15 * time.Second
	writeTimeout         = 60 * time.Second
	idleTimeout          = 60 * time.Second
	shutdownGraceTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	uploadStore, err := uploads.NewStore(cfg.AudioDir, cfg.BaseURL)
	if err != nil {
		slog.Error("failed to prepare audio storage", "error", err)
		os.Exit(1)
	}

	deps := server.Dependencies{
		Sessions:    show.NewStore(show.WithTTL(cfg.SessionTTL)),
		Uploads:     uploadStore,
		Synthesizer: buildSynthesizer(ctx, cfg, uploadStore),
		Transcriber: buildTranscriber(ctx),
	}
	deps.Replies = buildReplyGenerator(cfg, deps.Synthesizer)

	deps.Sessions.StartSweeper(ctx, cfg.SweepInterval)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.New(cfg, deps).Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("showd listening", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGraceTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
		slog.Info("server stopped")
	case err := <-errCh:
		if err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}
}

// buildSynthesizer wires the speech provider, or returns nil so the
// show runs subtitle-only when it is not configured.
func buildSynthesizer(ctx context.Context, cfg server.Config, sink texttospeech.AudioSink) texttospeech.Synthesizer {
	voice, err := ttsdeepgram.ParseVoice(cfg.TTSVoice)
	if err != nil {
		slog.Warn("invalid voice configured, synthesis disabled", "error", err)
		return nil
	}

	client, err := ttsdeepgram.NewSynthesisClient(ctx, voice, sink)
	if err != nil {
		slog.Warn("speech synthesis unavailable", "error", err)
		return nil
	}
	return client
}

func buildTranscriber(ctx context.Context) speechtotext.Transcriber {
	client, err := sttdeepgram.NewTranscriptionClient(ctx)
	if err != nil {
		slog.Warn("transcription unavailable", "error", err)
		return nil
	}
	return client
}

// buildReplyGenerator always yields a generator; without an LLM it
// answers every question with the fixed in-persona fallback line.
func buildReplyGenerator(cfg server.Config, synth texttospeech.Synthesizer) replies.Generator {
	var llm replyllm.LLM
	if client, err := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel); err != nil {
		slog.Warn("reply model unavailable, answering with fallback lines", "error", err)
	} else {
		llm = client
	}
	return replyllm.NewHandler(llm, synth)
}
