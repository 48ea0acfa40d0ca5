package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	geminiTextModel  = "gemini-2.0-flash"
	geminiImageModel = "gemini-2.0-flash-exp-image-generation"
)

// GeminiClient talks to the Gemini API for both text and image generation.
type GeminiClient struct {
	client     *genai.Client
	textModel  *genai.GenerativeModel
	imageModel *genai.GenerativeModel
}

// NewGeminiClient creates a new Gemini API client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	textModel := client.GenerativeModel(geminiTextModel)
	// The suggestion pipeline demands raw JSON; asking the model for it here
	// avoids markdown-fenced responses.
	textModel.ResponseMIMEType = "application/json"

	return &GeminiClient{
		client:     client,
		textModel:  textModel,
		imageModel: client.GenerativeModel(geminiImageModel),
	}, nil
}

// GenerateContent sends a prompt to the text model and returns the generated text.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	resp, err := c.textModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return ContentResponse{}, fmt.Errorf("generated content is not text")
	}

	usage := Usage{Model: geminiTextModel}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return ContentResponse{Content: string(text), Usage: usage}, nil
}

// GenerateImage asks the image model for a single picture and returns it as
// an inline data URI.
func (c *GeminiClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.imageModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate image: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok {
				mime := blob.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(blob.Data)), nil
			}
		}
	}
	return "", fmt.Errorf("no image generated")
}

// Close closes the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
