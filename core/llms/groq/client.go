package groq

import "fmt"

const url = "https://api.groq.com/openai/v1/chat/completions"

const defaultModel = "llama-3.3-70b-versatile"

type Client struct {
	apiKey string
	model  string
}

func NewClient(apiKey string, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq api key not found")
	}
	if model == "" {
		model = defaultModel
	}

	return &Client{apiKey: apiKey, model: model}, nil
}
