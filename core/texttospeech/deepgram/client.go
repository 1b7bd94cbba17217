package deepgram

import (
	"context"
	"fmt"
	"slices"

	"github.com/magoslive/show-core/core/audio"
	"github.com/magoslive/show-core/core/texttospeech"
)

type SynthesisClient struct {
	voice        deepgramVoice
	encodingInfo audio.EncodingInfo
	sink         texttospeech.AudioSink
}

// NewSynthesisClient creates a one-shot synthesis client. Synthesized
// audio is persisted through the sink and returned as a URL.
func NewSynthesisClient(ctx context.Context, voice deepgramVoice, sink texttospeech.AudioSink) (*SynthesisClient, error) {
	client := &SynthesisClient{
		voice:        defaultVoice,
		encodingInfo: audio.GetDefaultEncodingInfo(),
		sink:         sink,
	}

	if !slices.Contains(GetAvailableVoices(), voice) {
		return nil, fmt.Errorf("invalid voice")
	}

	client.voice = voice

	if sink == nil {
		return nil, fmt.Errorf("audio sink is required")
	}

	return client, nil
}

func (c *SynthesisClient) SetVoice(voice deepgramVoice) {
	c.voice = voice
}
