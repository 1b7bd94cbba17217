package server

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected defaults to load, got %v", err)
	}

	if cfg.Port != 3000 {
		t.Fatalf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected default session ttl of 30m, got %v", cfg.SessionTTL)
	}
	if cfg.QuestionWindowTimeout != 0 {
		t.Fatalf("expected question window to wait forever by default, got %v", cfg.QuestionWindowTimeout)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ANSWER_HOLD", "9s")
	t.Setenv("QUESTION_WINDOW_TIMEOUT", "45s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected environment config to load, got %v", err)
	}

	if cfg.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.Port)
	}

	timings := cfg.Timings()
	if timings.AnswerHold != 9*time.Second {
		t.Fatalf("expected answer hold override, got %v", timings.AnswerHold)
	}
	if timings.QuestionWindowTimeout != 45*time.Second {
		t.Fatalf("expected question window timeout, got %v", timings.QuestionWindowTimeout)
	}
}
