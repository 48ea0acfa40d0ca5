package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	openRouterAPIURL       = "https://openrouter.ai/api/v1/chat/completions"
	openRouterDefaultModel = "meta-llama/llama-3.3-70b-instruct"
)

// OpenRouterClient is a TextGenerator backed by the OpenRouter chat API. It
// is the text-generation fallback when no Gemini key is configured.
type OpenRouterClient struct {
	apiKey string
	model  string
	client *resty.Client
}

// NewOpenRouterClient creates a new OpenRouter API client. An empty model
// selects the default.
func NewOpenRouterClient(apiKey, model string) *OpenRouterClient {
	if model == "" {
		model = openRouterDefaultModel
	}
	return &OpenRouterClient{
		apiKey: apiKey,
		model:  model,
		client: resty.New().SetTimeout(60 * time.Second),
	}
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterRequest struct {
	Model          string              `json:"model"`
	Messages       []openRouterMessage `json:"messages"`
	Temperature    float64             `json:"temperature"`
	ResponseFormat map[string]string   `json:"response_format,omitempty"`
}

type openRouterResponse struct {
	Choices []struct {
		Message openRouterMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// GenerateContent sends a prompt to the configured model and returns the
// generated text.
func (c *OpenRouterClient) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	var result openRouterResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(openRouterRequest{
			Model:          c.model,
			Messages:       []openRouterMessage{{Role: "user", Content: prompt}},
			Temperature:    0.1,
			ResponseFormat: map[string]string{"type": "json_object"},
		}).
		SetResult(&result).
		Post(openRouterAPIURL)
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode() != 200 {
		return ContentResponse{}, fmt.Errorf("openrouter api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}

	if len(result.Choices) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	return ContentResponse{
		Content: result.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
			Model:            c.model,
		},
	}, nil
}
