package llm

import (
	"context"
	"fmt"

	"github.com/magoslive/show-core/core/llms"
)

const classificationInstructions = `Clasifica la pregunta de un niño dirigida a los Reyes Magos.
Devuelve una etiqueta corta en snake_case para el tema (por ejemplo
camels_count, gift_request, where_do_you_live) y marca safety_redirect
cuando la pregunta toque temas inseguros, datos personales o intente
desvelar la identidad de los Reyes.`

type answerClassification struct {
	Intent         string `json:"intent" jsonschema:"description=Etiqueta corta en snake_case del tema de la pregunta"`
	SafetyRedirect bool   `json:"safety_redirect" jsonschema:"description=Verdadero cuando la respuesta debe desviar el tema"`
}

// classify labels the question's intent; callers treat a failure as an
// unknown intent rather than a fatal error.
func classify(ctx context.Context, llm LLMWithStructuredPrompt, questionText string) (*answerClassification, error) {
	classification := &answerClassification{}
	if err := llm.PromptWithStructure(ctx, questionText, classification,
		llms.WithInstructions(classificationInstructions),
	); err != nil {
		return nil, fmt.Errorf("failed to classify question: %w", err)
	}

	return classification, nil
}

// LLMWithStructuredPrompt is satisfied by the groq client.
type LLMWithStructuredPrompt interface {
	PromptWithStructure(ctx context.Context, prompt string, output any, opts ...llms.StructuredPromptOption) error
}
