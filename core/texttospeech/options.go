package texttospeech

import (
	"context"

	"github.com/magoslive/show-core/core/audio"
)

// Speech is the result of a one-shot synthesis: an addressable audio
// asset and how long it plays for.
type Speech struct {
	AudioURL   string
	DurationMS int64
}

// Synthesizer produces a playable audio asset for a line of text.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, opts ...SynthesizeOption) (*Speech, error)
}

// AudioSink persists synthesized audio and returns the public URL it
// will be served from.
type AudioSink interface {
	StoreAudio(name string, data []byte) (string, error)
}

type SynthesizeOptions struct {
	// Voice overrides the client's configured voice for this call.
	Voice string

	EncodingInfo audio.EncodingInfo
}

type SynthesizeOption func(*SynthesizeOptions)

// WithVoice overrides the voice used for a single synthesis call.
func WithVoice(voice string) SynthesizeOption {
	return func(o *SynthesizeOptions) { o.Voice = voice }
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SynthesizeOption {
	return func(o *SynthesizeOptions) {
		if encodingInfo.IsZero() {
			return
		}

		o.EncodingInfo = encodingInfo
	}
}
