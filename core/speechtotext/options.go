package speechtotext

import "context"

// Transcriber turns an uploaded recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, opts ...TranscriptionOption) (string, error)
}

type TranscriptionOptions struct {
	// Model selects the transcription model.
	Model string
	// Language is a BCP-47 language tag hint for the recording.
	Language string
	// MimeType describes the uploaded audio container.
	MimeType string
}

type TranscriptionOption func(*TranscriptionOptions)

func WithModel(model string) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		if model != "" {
			o.Model = model
		}
	}
}

func WithLanguage(language string) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		if language != "" {
			o.Language = language
		}
	}
}

func WithMimeType(mimeType string) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		if mimeType != "" {
			o.MimeType = mimeType
		}
	}
}
