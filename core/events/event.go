package events

// Cue names a display-side animation for the currently speaking
// character.
type Cue string

const (
	CueTalkHappy Cue = "talk_happy"
	CueIdle      Cue = "idle"
	CuePoint     Cue = "point"
	CueWave      Cue = "wave"
)

// Event is the unit returned to a polling display client.
type Event struct {
	Phase        string  `json:"phase"`
	SpeakerID    string  `json:"speakerId"`
	SubtitleText string  `json:"subtitleText"`
	AudioURL     *string `json:"audioURL"`
	DurationMS   int64   `json:"durationMs"`
	AnimationCue Cue     `json:"animationCue"`

	// QuestionWindowOpen tells the input surface it may record a
	// question right now. QuestionWindowSeconds is the suggested
	// recording budget and is only meaningful when the window is open.
	QuestionWindowOpen    bool `json:"questionWindowOpen"`
	QuestionWindowSeconds int  `json:"questionWindowSeconds,omitempty"`

	// ClassifiedIntent and SafetyRedirectUsed are only set on answer
	// events produced by the reply pipeline.
	ClassifiedIntent   string `json:"classifiedIntent,omitempty"`
	SafetyRedirectUsed bool   `json:"safetyRedirectUsed,omitempty"`
}
