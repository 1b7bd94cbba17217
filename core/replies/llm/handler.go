package llm

import (
	"context"

	"github.com/magoslive/show-core/core/events"
	"github.com/magoslive/show-core/core/replies"
	"github.com/magoslive/show-core/core/texttospeech"
	"go.opentelemetry.io/otel/attribute"
)

// fallbackAnswerDurationMS bounds the answer hold when no synthesized
// duration is available.
const fallbackAnswerDurationMS int64 = 5000

type LLM interface {
	LLMWithGeneralPrompt
	LLMWithStructuredPrompt
}

// Handler answers questions with an LLM and synthesizes the spoken
// reply up front, so the display can start playback the moment the
// answer event is polled.
type Handler struct {
	llm   LLM
	synth texttospeech.Synthesizer
}

func NewHandler(llm LLM, synth texttospeech.Synthesizer) *Handler {
	return &Handler{llm: llm, synth: synth}
}

// GenerateReply classifies the question, generates the in-persona
// answer, and synthesizes it. Upstream failures degrade step by step
// (unknown intent, fallback line, missing audio) but always yield a
// playable reply.
func (h *Handler) GenerateReply(ctx context.Context, question replies.Question) (*replies.Reply, error) {
	ctx, span := tracer.Start(ctx, "generate reply")
	defer span.End()
	span.SetAttributes(attribute.String("question.speaker", question.Speaker))

	intent := "unknown"
	redirect := false
	if h.llm == nil {
		logger.WarnContext(ctx, "no llm configured, answering with fallback line")
		return h.buildReply(ctx, FallbackAnswer, intent, false), nil
	}

	if classification, err := classify(ctx, h.llm, question.Text); err != nil {
		logger.WarnContext(ctx, "question classification failed, treating intent as unknown", "error", err)
	} else {
		intent = classification.Intent
		redirect = classification.SafetyRedirect
	}
	span.SetAttributes(attribute.String("reply.intent", intent))

	answer, err := respond(ctx, h.llm, question, redirect)
	if err != nil {
		logger.WarnContext(ctx, "reply generation failed, using fallback line", "error", err)
		answer = FallbackAnswer
		redirect = false
	}

	return h.buildReply(ctx, answer, intent, redirect), nil
}

func (h *Handler) buildReply(ctx context.Context, answer, intent string, redirect bool) *replies.Reply {
	reply := &replies.Reply{
		SpokenText:         answer,
		SubtitleText:       answer,
		AnimationCue:       events.CueTalkHappy,
		ClassifiedIntent:   intent,
		SafetyRedirectUsed: redirect,
		DurationMS:         fallbackAnswerDurationMS,
	}

	if h.synth != nil {
		if speech, err := h.synth.Synthesize(ctx, answer); err != nil {
			logger.WarnContext(ctx, "answer synthesis failed, display falls back to subtitles", "error", err)
		} else {
			reply.AudioURL = speech.AudioURL
			reply.DurationMS = speech.DurationMS
		}
	}

	return reply
}
