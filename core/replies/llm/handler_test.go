package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/magoslive/show-core/core/llms"
	"github.com/magoslive/show-core/core/replies"
	"github.com/magoslive/show-core/core/texttospeech"
)

type stubLLM struct {
	answer         string
	answerErr      error
	classification string
	classifyErr    error
}

func (s *stubLLM) Prompt(ctx context.Context, prompt string, opts ...llms.GeneralPromptOption) (*llms.Message, error) {
	if s.answerErr != nil {
		return nil, s.answerErr
	}
	return &llms.Message{Role: llms.MessageRoleAssistant, Content: s.answer}, nil
}

func (s *stubLLM) PromptWithStructure(ctx context.Context, prompt string, output any, opts ...llms.StructuredPromptOption) error {
	if s.classifyErr != nil {
		return s.classifyErr
	}
	return json.Unmarshal([]byte(s.classification), output)
}

type stubSynthesizer struct {
	err error
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesizeOption) (*texttospeech.Speech, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &texttospeech.Speech{AudioURL: "http://localhost:3000/audio/answer.wav", DurationMS: 6200}, nil
}

func TestGenerateReplyCarriesClassification(t *testing.T) {
	handler := NewHandler(&stubLLM{
		answer:         "Tenemos tantos camellos como estrellas hay en el cielo.",
		classification: `{"intent":"camels_count","safety_redirect":false}`,
	}, &stubSynthesizer{})

	reply, err := handler.GenerateReply(context.Background(), replies.Question{
		Text:            "¿Cuántos camellos tenéis?",
		Speaker:         "GASPAR",
		ParticipantName: "Ana",
	})
	if err != nil {
		t.Fatalf("expected reply, got error %v", err)
	}

	if reply.ClassifiedIntent != "camels_count" {
		t.Fatalf("expected classified intent, got %q", reply.ClassifiedIntent)
	}
	if reply.SpokenText != "Tenemos tantos camellos como estrellas hay en el cielo." {
		t.Fatalf("unexpected spoken text %q", reply.SpokenText)
	}
	if reply.AudioURL == "" || reply.DurationMS != 6200 {
		t.Fatalf("expected synthesized audio on reply, got %q / %d", reply.AudioURL, reply.DurationMS)
	}
}

func TestGenerateReplyFallsBackWhenGenerationFails(t *testing.T) {
	handler := NewHandler(&stubLLM{
		answerErr:      fmt.Errorf("upstream down"),
		classification: `{"intent":"gift_request","safety_redirect":false}`,
	}, &stubSynthesizer{err: fmt.Errorf("also down")})

	reply, err := handler.GenerateReply(context.Background(), replies.Question{
		Text:    "¿Me traeréis una bicicleta?",
		Speaker: "MELCHOR",
	})
	if err != nil {
		t.Fatalf("expected degraded reply, got error %v", err)
	}

	if reply.SpokenText != FallbackAnswer {
		t.Fatalf("expected fallback answer, got %q", reply.SpokenText)
	}
	if reply.AudioURL != "" {
		t.Fatalf("expected no audio URL after synthesis failure, got %q", reply.AudioURL)
	}
	if reply.DurationMS != fallbackAnswerDurationMS {
		t.Fatalf("expected fallback duration, got %d", reply.DurationMS)
	}
}

func TestGenerateReplyClassificationFailureIsNotFatal(t *testing.T) {
	handler := NewHandler(&stubLLM{
		answer:      "La estrella brilla para ti.",
		classifyErr: fmt.Errorf("schema rejected"),
	}, nil)

	reply, err := handler.GenerateReply(context.Background(), replies.Question{Text: "¿Dónde vivís?", Speaker: "BALTASAR"})
	if err != nil {
		t.Fatalf("expected reply despite classification failure, got %v", err)
	}

	if reply.ClassifiedIntent != "unknown" {
		t.Fatalf("expected unknown intent, got %q", reply.ClassifiedIntent)
	}
}

func TestReplyEventForcesNullAudioWhenMissing(t *testing.T) {
	reply := replies.Reply{SubtitleText: "...", DurationMS: 5000}

	event := reply.Event("GASPAR")
	if event.AudioURL != nil {
		t.Fatalf("expected nil audio URL, got %v", *event.AudioURL)
	}
	if event.SpeakerID != "GASPAR" {
		t.Fatalf("expected speaker to be set, got %q", event.SpeakerID)
	}
}

func TestGenerateReplyWithoutLLMUsesFallbackLine(t *testing.T) {
	handler := NewHandler(nil, &stubSynthesizer{})

	reply, err := handler.GenerateReply(context.Background(), replies.Question{Text: "¿Qué coméis?", Speaker: "MELCHOR"})
	if err != nil {
		t.Fatalf("expected fallback reply without llm, got %v", err)
	}

	if reply.SpokenText != FallbackAnswer {
		t.Fatalf("expected fallback answer, got %q", reply.SpokenText)
	}
	if reply.ClassifiedIntent != "unknown" {
		t.Fatalf("expected unknown intent, got %q", reply.ClassifiedIntent)
	}
	if reply.AudioURL == "" {
		t.Fatalf("expected fallback line to still be synthesized")
	}
}
