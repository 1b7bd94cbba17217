package show

import (
	"context"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/magoslive/show-core/core/texttospeech"
	"go.opentelemetry.io/otel/attribute"
)

// Fallback durations for slots whose synthesis failed, so playback
// timing stays deterministic even when audio is absent.
const (
	fallbackIntroMS     int64 = 15000
	fallbackWelcomeMS   int64 = 4000
	fallbackListeningMS int64 = 3000
	fallbackGiftMS      int64 = 4000
	fallbackClosingMS   int64 = 10000
)

// Asset is one pre-synthesized audio slot. An empty AudioURL means
// synthesis failed and the show plays subtitles against the fallback
// duration.
type Asset struct {
	AudioURL   string
	DurationMS int64
}

// Bundle holds every audio asset a session needs for non-blocking
// playback: the fixed script lines plus one welcome line per
// participant. Produced once at creation, read-only afterwards.
type Bundle struct {
	Intro     Asset
	Listening Asset
	Gift      Asset
	Closing   Asset
	Welcomes  []Asset
}

// FallbackBundle is a bundle with no audio and safe default durations.
func FallbackBundle(participantCount int) Bundle {
	b := Bundle{
		Intro:     Asset{DurationMS: fallbackIntroMS},
		Listening: Asset{DurationMS: fallbackListeningMS},
		Gift:      Asset{DurationMS: fallbackGiftMS},
		Closing:   Asset{DurationMS: fallbackClosingMS},
		Welcomes:  make([]Asset, participantCount),
	}
	for i := range b.Welcomes {
		b.Welcomes[i] = Asset{DurationMS: fallbackWelcomeMS}
	}
	return b
}

// PrepareAssets synthesizes every statically-known line concurrently,
// bounding wall-clock latency to the slowest single call. Individual
// failures degrade that slot to its fallback; a cancelled or expired
// context returns whatever completed so far. Never fails the bundle.
func PrepareAssets(ctx context.Context, synth texttospeech.Synthesizer, participants []Participant) Bundle {
	ctx, span := tracer.Start(ctx, "prepare session assets")
	defer span.End()
	span.SetAttributes(attribute.Int("request.participants", len(participants)))

	bundle := FallbackBundle(len(participants))
	if synth == nil {
		return bundle
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	request := func(text string, apply func(*Bundle, Asset)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			speech, err := synth.Synthesize(ctx, text)
			if err != nil {
				logger.WarnContext(ctx, "asset synthesis failed, slot degrades to fallback duration",
					"error", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			apply(&bundle, Asset{AudioURL: speech.AudioURL, DurationMS: speech.DurationMS})
		}()
	}

	request(ScriptIntro, func(b *Bundle, a Asset) { b.Intro = a })
	request(ScriptListening, func(b *Bundle, a Asset) { b.Listening = a })
	request(ScriptGift, func(b *Bundle, a Asset) { b.Gift = a })
	request(ScriptClosing, func(b *Bundle, a Asset) { b.Closing = a })
	for i, participant := range participants {
		request(welcomeLine(participant.Name), func(b *Bundle, a Asset) { b.Welcomes[i] = a })
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	start := time.Now()
	select {
	case <-done:
	case <-ctx.Done():
		logger.WarnContext(ctx, "asset preparation cut short, proceeding with completed slots",
			"elapsed", time.Since(start))
	}

	// Stragglers may still be writing after a timeout; hand back a deep
	// copy taken under the lock.
	mu.Lock()
	defer mu.Unlock()
	var snapshot Bundle
	if err := copier.Copy(&snapshot, &bundle); err != nil {
		return FallbackBundle(len(participants))
	}
	return snapshot
}
