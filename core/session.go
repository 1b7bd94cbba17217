package show

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/magoslive/show-core/core/events"
)

const (
	PackBasic = "basic"
	PackPlus  = "plus"
)

var (
	// ErrNoParticipants indicates a session was created without anyone
	// to run a turn for.
	ErrNoParticipants = errors.New("at least one participant is required")
	// ErrQuestionLimit indicates the current participant has used up
	// their questions for this turn.
	ErrQuestionLimit = errors.New("question limit reached for current participant")
)

// Participant is one person the show runs a turn for.
type Participant struct {
	Name     string `json:"name"`
	AgeGroup string `json:"age_group,omitempty"`
	Tagline  string `json:"tagline,omitempty"`
}

// Gift pairs a participant's name with the present revealed at the end
// of their turn. Matching is by name, not position, so the gift list
// may be ordered differently than the participant list.
type Gift struct {
	Person string `json:"person"`
	Label  string `json:"label"`
}

// CreateSessionInput describes everything fixed at session creation.
type CreateSessionInput struct {
	Pack         string
	Participants []Participant
	Gifts        []Gift
	Settings     map[string]string
}

// Timings holds the elapsed-time gates the state machine advances on.
type Timings struct {
	// AnswerHold is the minimum time an answer is held before the show
	// moves on to the gift reveal.
	AnswerHold time.Duration
	// IntroBuffer pads the intro beyond its audio duration.
	IntroBuffer time.Duration
	// TurnBuffer pads turn and gift events beyond their audio duration.
	TurnBuffer time.Duration
	// QuestionWindowTimeout forces the show onward when no question
	// arrives. Zero means the window waits forever and the host
	// mediates manually.
	QuestionWindowTimeout time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		AnswerHold:            12 * time.Second,
		IntroBuffer:           time.Second,
		TurnBuffer:            2 * time.Second,
		QuestionWindowTimeout: 0,
	}
}

// Session is one show run. The identity fields are immutable after
// creation; all mutable state is guarded by the session's own lock so
// concurrent polls and reply submissions never contend across sessions.
type Session struct {
	ID           string
	Pack         string
	Participants []Participant
	Gifts        []Gift
	Settings     map[string]string
	CreatedAt    time.Time

	timings       Timings
	questionLimit int

	mu               sync.Mutex
	phase            Phase
	phaseStartedAt   time.Time
	firstPolledAt    time.Time
	participantIndex int
	speakerIndex     int
	questionsAsked   int
	assets           Bundle
	queue            []events.Event
}

type SessionOption func(*Session)

// WithAssets attaches a pre-synthesized asset bundle. Without it the
// session plays subtitles against fallback durations.
func WithAssets(bundle Bundle) SessionOption {
	return func(s *Session) { s.assets = bundle }
}

func WithTimings(timings Timings) SessionOption {
	return func(s *Session) { s.timings = timings }
}

// WithQuestionLimit overrides the pack-derived per-participant question
// limit.
func WithQuestionLimit(limit int) SessionOption {
	return func(s *Session) {
		if limit > 0 {
			s.questionLimit = limit
		}
	}
}

// NewSession creates a session in the intro phase. The show clock does
// not start until the first poll.
func NewSession(input CreateSessionInput, opts ...SessionOption) (*Session, error) {
	if len(input.Participants) == 0 {
		return nil, ErrNoParticipants
	}

	pack := input.Pack
	if pack == "" {
		pack = PackBasic
	}

	s := &Session{
		ID:           uuid.NewString(),
		Pack:         pack,
		Participants: input.Participants,
		Gifts:        input.Gifts,
		Settings:     input.Settings,
		CreatedAt:    time.Now(),

		timings:       DefaultTimings(),
		questionLimit: defaultQuestionLimit(pack),
		phase:         PhaseIntro,
		assets:        FallbackBundle(len(input.Participants)),
	}

	for _, opt := range opts {
		opt(s)
	}

	if len(s.assets.Welcomes) != len(s.Participants) {
		return nil, fmt.Errorf("asset bundle has %d welcome slots for %d participants",
			len(s.assets.Welcomes), len(s.Participants))
	}

	return s, nil
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CurrentSpeaker returns the King whose turn it currently is.
func (s *Session) CurrentSpeaker() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speakerLocked()
}

// CurrentParticipant returns the participant whose turn it currently
// is, or false once every turn has been played.
func (s *Session) CurrentParticipant() (Participant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.participantIndex >= len(s.Participants) {
		return Participant{}, false
	}
	return s.Participants[s.participantIndex], true
}

// ReserveQuestion increments the current participant's question count,
// or fails with ErrQuestionLimit when their budget is spent. Callers
// reserve before generating a reply so a rejected question never
// reaches the queue.
func (s *Session) ReserveQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.questionsAsked >= s.questionLimit {
		return ErrQuestionLimit
	}
	s.questionsAsked++
	return nil
}

// EnqueueAnswer appends a pre-built answer event at the tail of the
// interrupt queue. Enqueuing never changes the phase: the display only
// transitions when a poll actually observes the event.
func (s *Session) EnqueueAnswer(event events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.Phase = string(PhaseAnswer)
	s.queue = append(s.queue, event)
}

func (s *Session) speakerLocked() string {
	return kings[s.speakerIndex%len(kings)]
}

func (s *Session) giftLabelLocked() string {
	if s.participantIndex >= len(s.Participants) {
		return genericGiftLabel
	}
	name := s.Participants[s.participantIndex].Name
	for _, gift := range s.Gifts {
		if gift.Person == name {
			return gift.Label
		}
	}
	return genericGiftLabel
}
