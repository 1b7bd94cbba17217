// Package replies defines the contract for answering a participant's
// live question in persona.
package replies

import (
	"context"

	"github.com/magoslive/show-core/core/events"
)

// Question is one transcribed utterance from the input surface.
type Question struct {
	// Text is the transcribed question.
	Text string
	// Speaker is the King who will deliver the answer.
	Speaker string
	// ParticipantName is who asked, used to personalize the answer.
	ParticipantName string
	// AgeGroup hints how the answer should be pitched.
	AgeGroup string
}

// Reply is a fully prepared answer: text for subtitles, synthesized
// audio, and the classification metadata the input surface displays.
type Reply struct {
	SpokenText         string
	SubtitleText       string
	AnimationCue       events.Cue
	ClassifiedIntent   string
	SafetyRedirectUsed bool
	AudioURL           string
	DurationMS         int64
}

// Generator produces a Reply for a Question. Implementations degrade to
// an in-persona fallback line on upstream failure rather than erroring,
// so the show never stalls; an error return means the question could
// not be processed at all.
type Generator interface {
	GenerateReply(ctx context.Context, question Question) (*Reply, error)
}

// Event converts a reply into the answer event queued for the display.
func (r *Reply) Event(speaker string) events.Event {
	var audioURL *string
	if r.AudioURL != "" {
		audioURL = &r.AudioURL
	}
	return events.Event{
		SpeakerID:          speaker,
		SubtitleText:       r.SubtitleText,
		AudioURL:           audioURL,
		DurationMS:         r.DurationMS,
		AnimationCue:       r.AnimationCue,
		ClassifiedIntent:   r.ClassifiedIntent,
		SafetyRedirectUsed: r.SafetyRedirectUsed,
	}
}
