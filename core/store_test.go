package show

import (
	"errors"
	"testing"
	"time"
)

func TestStoreGetUnknownSession(t *testing.T) {
	store := NewStore()

	if _, err := store.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := store.Advance("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound from advance, got %v", err)
	}
}

func TestStoreAdvanceUsesInjectedClock(t *testing.T) {
	now := time.Now()
	store := NewStore(WithClock(func() time.Time { return now }))
	session := newTestSession(t, CreateSessionInput{})
	store.Publish(session)

	event, err := store.Advance(session.ID)
	if err != nil {
		t.Fatalf("expected event, got %v", err)
	}
	if event.Phase != string(PhaseIntro) {
		t.Fatalf("expected INTRO on first poll, got %s", event.Phase)
	}

	now = now.Add(16 * time.Second)
	event, err = store.Advance(session.ID)
	if err != nil {
		t.Fatalf("expected event, got %v", err)
	}
	if event.Phase != string(PhaseTurnStart) {
		t.Fatalf("expected TURN_START once the intro hold elapsed, got %s", event.Phase)
	}
}

func TestSweepEvictsExpiredSessions(t *testing.T) {
	now := time.Now()
	store := NewStore(WithClock(func() time.Time { return now }), WithTTL(30*time.Minute))

	expired := newTestSession(t, CreateSessionInput{})
	expired.CreatedAt = now.Add(-31 * time.Minute)
	fresh := newTestSession(t, CreateSessionInput{})
	fresh.CreatedAt = now.Add(-5 * time.Minute)
	store.Publish(expired)
	store.Publish(fresh)

	if swept := store.Sweep(now); swept != 1 {
		t.Fatalf("expected one session swept, got %d", swept)
	}

	if _, err := store.Get(expired.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
	if _, err := store.Get(fresh.ID); err != nil {
		t.Fatalf("expected fresh session to survive, got %v", err)
	}
}

func TestSweepExpiresRegardlessOfActivity(t *testing.T) {
	now := time.Now()
	store := NewStore(WithClock(func() time.Time { return now }), WithTTL(time.Minute))

	session := newTestSession(t, CreateSessionInput{})
	store.Publish(session)

	// Keep polling right up to the TTL; eviction is by creation time,
	// not idleness.
	if _, err := store.Advance(session.ID); err != nil {
		t.Fatalf("expected poll to succeed, got %v", err)
	}

	if swept := store.Sweep(now.Add(time.Minute)); swept != 1 {
		t.Fatalf("expected active session evicted at TTL, got %d", swept)
	}
}
