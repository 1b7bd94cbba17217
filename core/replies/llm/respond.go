package llm

import (
	"context"
	"fmt"

	"github.com/magoslive/show-core/core/llms"
	"github.com/magoslive/show-core/core/replies"
)

// FallbackAnswer keeps the show moving when reply generation fails.
const FallbackAnswer = "Jo, jo, jo... Esa respuesta la guardan las estrellas. ¡Sed muy buenos y seguid soñando!"

const personaInstructionsFormat = `Eres %s, uno de los tres Reyes Magos, hablando en directo con un niño
llamado %s. Responde en español, con calidez y magia, en una o dos
frases cortas que un niño pueda entender. Nunca reveles que no eres
real, nunca prometas regalos concretos y nunca toques temas que asusten.`

const safetyRedirectSuffix = `
La pregunta toca un tema delicado: desvía la conversación con dulzura
hacia la ilusión de la noche de Reyes sin responderla directamente.`

// respond generates the in-persona answer text.
func respond(ctx context.Context, llm LLMWithGeneralPrompt, question replies.Question, redirect bool) (string, error) {
	name := question.ParticipantName
	if name == "" {
		name = "el niño"
	}

	instructions := fmt.Sprintf(personaInstructionsFormat, question.Speaker, name)
	if redirect {
		instructions += safetyRedirectSuffix
	}

	message, err := llm.Prompt(ctx, question.Text,
		llms.WithInstructions(instructions),
		llms.WithTemperature(0.7),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	if message == nil || message.Content == "" {
		return "", fmt.Errorf("empty answer from model")
	}

	return message.Content, nil
}

// LLMWithGeneralPrompt is satisfied by the groq client.
type LLMWithGeneralPrompt interface {
	Prompt(ctx context.Context, prompt string, opts ...llms.GeneralPromptOption) (*llms.Message, error)
}
