package llms

type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Message is a single exchange entry with a language model.
type Message struct {
	Role    MessageRole
	Content string
}

type GeneralPromptOptions struct {
	// Instructions is the system prompt the model answers under.
	Instructions string
	// History carries prior exchange messages, earliest first.
	History []Message
	// Temperature, when set, overrides the model's sampling default.
	Temperature *float64
}

type GeneralPromptOption interface {
	ApplyToGeneral(*GeneralPromptOptions)
}

type StructuredPromptOptions struct {
	// Instructions is the system prompt the model answers under.
	Instructions string
	// History carries prior exchange messages, earliest first.
	History []Message
}

type StructuredPromptOption interface {
	ApplyToStructured(*StructuredPromptOptions)
}

type instructionsOption struct{ instructions string }

func (o instructionsOption) ApplyToGeneral(opts *GeneralPromptOptions) {
	opts.Instructions = o.instructions
}

func (o instructionsOption) ApplyToStructured(opts *StructuredPromptOptions) {
	opts.Instructions = o.instructions
}

// WithInstructions sets the system prompt for a single call.
func WithInstructions(instructions string) instructionsOption {
	return instructionsOption{instructions: instructions}
}

type historyOption struct{ history []Message }

func (o historyOption) ApplyToGeneral(opts *GeneralPromptOptions) {
	opts.History = append(opts.History, o.history...)
}

func (o historyOption) ApplyToStructured(opts *StructuredPromptOptions) {
	opts.History = append(opts.History, o.history...)
}

// WithHistory appends prior exchange messages to the prompt.
func WithHistory(history []Message) historyOption {
	return historyOption{history: history}
}

type temperatureOption struct{ temperature float64 }

func (o temperatureOption) ApplyToGeneral(opts *GeneralPromptOptions) {
	opts.Temperature = &o.temperature
}

// WithTemperature overrides the sampling temperature for a single call.
func WithTemperature(temperature float64) temperatureOption {
	return temperatureOption{temperature: temperature}
}
