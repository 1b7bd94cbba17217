package show

// Phase is one stage of the scripted show's state machine.
type Phase string

const (
	// PhaseIntro greets the whole audience, once, before the first turn.
	PhaseIntro Phase = "INTRO"
	// PhaseTurnStart announces the current participant by name.
	PhaseTurnStart Phase = "TURN_START"
	// PhaseQuestionWindow waits for the participant to ask a question.
	// It never advances on its own unless a timeout is configured.
	PhaseQuestionWindow Phase = "QUESTION_WINDOW"
	// PhaseAnswer plays a generated answer delivered via the interrupt
	// queue.
	PhaseAnswer Phase = "ANSWER"
	// PhaseGiftReveal points at the participant's gift.
	PhaseGiftReveal Phase = "GIFT_REVEAL"
	// PhaseClosing is terminal and holds forever.
	PhaseClosing Phase = "CLOSING"
)

func allPhases() []Phase {
	return []Phase{
		PhaseIntro,
		PhaseTurnStart,
		PhaseQuestionWindow,
		PhaseAnswer,
		PhaseGiftReveal,
		PhaseClosing,
	}
}
