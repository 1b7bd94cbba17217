package show

import (
	"errors"
	"testing"
	"time"

	"github.com/magoslive/show-core/core/events"
)

func eventWithText(text string) events.Event {
	return events.Event{SubtitleText: text}
}

func TestNewSessionRequiresParticipants(t *testing.T) {
	if _, err := NewSession(CreateSessionInput{}); !errors.Is(err, ErrNoParticipants) {
		t.Fatalf("expected ErrNoParticipants, got %v", err)
	}
}

func TestNewSessionDefaultsToBasicPack(t *testing.T) {
	session := newTestSession(t, CreateSessionInput{})

	if session.Pack != PackBasic {
		t.Fatalf("expected basic pack default, got %q", session.Pack)
	}
	if session.ID == "" {
		t.Fatalf("expected generated session id")
	}
}

func TestNewSessionRejectsMismatchedBundle(t *testing.T) {
	_, err := NewSession(CreateSessionInput{
		Participants: []Participant{{Name: "Ana"}, {Name: "Luis"}},
	}, WithAssets(FallbackBundle(1)))
	if err == nil {
		t.Fatalf("expected error for bundle with too few welcome slots")
	}
}

func TestReserveQuestionEnforcesBasicLimit(t *testing.T) {
	session := newTestSession(t, CreateSessionInput{Pack: PackBasic})

	if err := session.ReserveQuestion(); err != nil {
		t.Fatalf("expected first question to be allowed, got %v", err)
	}
	if err := session.ReserveQuestion(); !errors.Is(err, ErrQuestionLimit) {
		t.Fatalf("expected ErrQuestionLimit on second question, got %v", err)
	}
}

func TestReserveQuestionPlusPackAllowsTwo(t *testing.T) {
	session := newTestSession(t, CreateSessionInput{Pack: PackPlus})

	if err := session.ReserveQuestion(); err != nil {
		t.Fatalf("expected first question allowed, got %v", err)
	}
	if err := session.ReserveQuestion(); err != nil {
		t.Fatalf("expected second question allowed on plus pack, got %v", err)
	}
	if err := session.ReserveQuestion(); !errors.Is(err, ErrQuestionLimit) {
		t.Fatalf("expected third question rejected, got %v", err)
	}
}

func TestQuestionBudgetResetsForNextParticipant(t *testing.T) {
	session := newTestSession(t, CreateSessionInput{
		Participants: []Participant{{Name: "Ana"}, {Name: "Luis"}},
	})
	now := skipTo(t, session, time.Now(), PhaseQuestionWindow)

	if err := session.ReserveQuestion(); err != nil {
		t.Fatalf("expected Ana's question allowed, got %v", err)
	}
	if err := session.ReserveQuestion(); !errors.Is(err, ErrQuestionLimit) {
		t.Fatalf("expected Ana's budget spent, got %v", err)
	}

	// Play out Ana's answer and gift; Luis's turn resets the budget.
	session.EnqueueAnswer(eventWithText("respuesta"))
	now = now.Add(time.Second)
	session.Advance(now)
	skipTo(t, session, now.Add(12*time.Second), PhaseTurnStart)

	if err := session.ReserveQuestion(); err != nil {
		t.Fatalf("expected Luis's question allowed, got %v", err)
	}
}

func TestCurrentParticipantTracksCursor(t *testing.T) {
	session := newTestSession(t, CreateSessionInput{
		Participants: []Participant{{Name: "Ana"}},
	})

	participant, ok := session.CurrentParticipant()
	if !ok || participant.Name != "Ana" {
		t.Fatalf("expected Ana's turn, got %+v ok=%t", participant, ok)
	}
	if speaker := session.CurrentSpeaker(); speaker != "MELCHOR" {
		t.Fatalf("expected MELCHOR as first speaker, got %s", speaker)
	}

	now := skipTo(t, session, time.Now(), PhaseQuestionWindow)
	session.EnqueueAnswer(eventWithText("respuesta"))
	now = now.Add(time.Second)
	session.Advance(now)
	skipTo(t, session, now.Add(12*time.Second), PhaseClosing)

	if _, ok := session.CurrentParticipant(); ok {
		t.Fatalf("expected no current participant after the last turn")
	}
}
