package show

import (
	"time"

	"github.com/magoslive/show-core/core/events"
	"github.com/magoslive/show-core/internal/utils"
)

// Advance computes the event a display should be showing at the given
// instant, applying any phase transitions whose hold window has
// elapsed. The first call starts the show clock. The whole dispatch,
// including skipping forward through already-expired phases, runs as
// one atomic unit under the session lock so a concurrent enqueue can
// never be evaluated against a transient phase.
//
// Advance is idempotent within a hold window: repeated calls that cross
// no elapsed-time boundary return identical events.
func (s *Session) Advance(now time.Time) *events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The show clock starts at first observation, not at creation, so
	// asset generation latency never eats into phase timing budgets.
	if s.firstPolledAt.IsZero() {
		s.firstPolledAt = now
		s.phaseStartedAt = now
	}

	// A single poll can skip through a finite chain of expired phases;
	// every transition resets the phase clock, so this loop is bounded
	// by the phase count.
	for range len(allPhases()) + 1 {
		if event := s.stepLocked(now); event != nil {
			return event
		}
	}

	return s.answerPlaceholderLocked()
}

// stepLocked emits the current phase's event, or applies one transition
// and returns nil to signal the caller to dispatch again.
func (s *Session) stepLocked(now time.Time) *events.Event {
	elapsed := now.Sub(s.phaseStartedAt)

	// Preemption has absolute priority over timed progression. While an
	// answer is already playing, the next queued answer waits for the
	// hold window instead.
	if len(s.queue) > 0 && s.phase != PhaseAnswer {
		event := s.queue[0]
		s.queue = s.queue[1:]
		s.transitionLocked(PhaseAnswer, now)
		return &event
	}

	switch s.phase {
	case PhaseIntro:
		duration := max(s.assets.Intro.DurationMS, fallbackIntroMS)
		if elapsed < msDuration(duration)+s.timings.IntroBuffer {
			return &events.Event{
				Phase:        string(PhaseIntro),
				SpeakerID:    kings[0],
				SubtitleText: ScriptIntro,
				AudioURL:     audioURLPtr(s.assets.Intro),
				DurationMS:   duration,
				AnimationCue: events.CueTalkHappy,
			}
		}
		s.transitionLocked(PhaseTurnStart, now)

	case PhaseTurnStart:
		if s.participantIndex >= len(s.Participants) {
			// Cursor exhausted; the only legal phase left is terminal.
			s.transitionLocked(PhaseClosing, now)
			return nil
		}
		asset := s.assets.Welcomes[s.participantIndex]
		if elapsed < msDuration(asset.DurationMS)+s.timings.TurnBuffer {
			return &events.Event{
				Phase:                 string(PhaseTurnStart),
				SpeakerID:             s.speakerLocked(),
				SubtitleText:          welcomeLine(s.Participants[s.participantIndex].Name),
				AudioURL:              audioURLPtr(asset),
				DurationMS:            asset.DurationMS,
				AnimationCue:          events.CueTalkHappy,
				QuestionWindowOpen:    true,
				QuestionWindowSeconds: questionWindowSeconds(s.Pack),
			}
		}
		s.transitionLocked(PhaseQuestionWindow, now)

	case PhaseQuestionWindow:
		if s.timings.QuestionWindowTimeout > 0 && elapsed >= s.timings.QuestionWindowTimeout {
			s.transitionLocked(PhaseGiftReveal, now)
			return nil
		}
		return &events.Event{
			Phase:                 string(PhaseQuestionWindow),
			SpeakerID:             s.speakerLocked(),
			SubtitleText:          ScriptListening,
			AudioURL:              audioURLPtr(s.assets.Listening),
			DurationMS:            s.assets.Listening.DurationMS,
			AnimationCue:          events.CueIdle,
			QuestionWindowOpen:    true,
			QuestionWindowSeconds: questionWindowSeconds(s.Pack),
		}

	case PhaseAnswer:
		if elapsed >= s.timings.AnswerHold {
			s.transitionLocked(PhaseGiftReveal, now)
			return nil
		}
		return s.answerPlaceholderLocked()

	case PhaseGiftReveal:
		if elapsed < msDuration(s.assets.Gift.DurationMS)+s.timings.TurnBuffer {
			return &events.Event{
				Phase:        string(PhaseGiftReveal),
				SpeakerID:    s.speakerLocked(),
				SubtitleText: giftLine(s.giftLabelLocked()),
				AudioURL:     audioURLPtr(s.assets.Gift),
				DurationMS:   s.assets.Gift.DurationMS,
				AnimationCue: events.CuePoint,
			}
		}
		s.participantIndex++
		s.questionsAsked = 0
		if s.participantIndex >= len(s.Participants) {
			s.transitionLocked(PhaseClosing, now)
		} else {
			s.speakerIndex++
			s.transitionLocked(PhaseTurnStart, now)
		}

	case PhaseClosing:
		// Terminal: held forever, always the same event.
		return &events.Event{
			Phase:        string(PhaseClosing),
			SpeakerID:    kings[1],
			SubtitleText: ScriptClosing,
			AudioURL:     audioURLPtr(s.assets.Closing),
			DurationMS:   s.assets.Closing.DurationMS,
			AnimationCue: events.CueWave,
		}
	}

	return nil
}

func (s *Session) transitionLocked(phase Phase, now time.Time) {
	s.phase = phase
	s.phaseStartedAt = now
}

// answerPlaceholderLocked is the low-information event shown while an
// answer plays out, so the client always has something to render.
func (s *Session) answerPlaceholderLocked() *events.Event {
	return &events.Event{
		Phase:        string(PhaseAnswer),
		SpeakerID:    s.speakerLocked(),
		SubtitleText: "...",
		AnimationCue: events.CueTalkHappy,
	}
}

func audioURLPtr(asset Asset) *string {
	if asset.AudioURL == "" {
		return nil
	}
	return utils.Ptr(asset.AudioURL)
}

func msDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
