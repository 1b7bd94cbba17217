package deepgram

import (
	"fmt"
	"slices"
)

type deepgramVoice string

const (
	// Spanish Aura 2 voices used for the rotating cast.
	VoiceCelesteES deepgramVoice = "aura-2-celeste-es"
	VoiceSirioES   deepgramVoice = "aura-2-sirio-es"
	VoiceNestorES  deepgramVoice = "aura-2-nestor-es"
	VoiceAquilaES  deepgramVoice = "aura-2-aquila-es"
)

const defaultVoice = VoiceCelesteES

func GetAvailableVoices() []deepgramVoice {
	return []deepgramVoice{VoiceCelesteES, VoiceSirioES, VoiceNestorES, VoiceAquilaES}
}

// ParseVoice resolves a configured voice name, defaulting when empty.
func ParseVoice(name string) (deepgramVoice, error) {
	if name == "" {
		return defaultVoice, nil
	}

	voice := deepgramVoice(name)
	if !slices.Contains(GetAvailableVoices(), voice) {
		return "", fmt.Errorf("unknown voice %q", name)
	}

	return voice, nil
}
