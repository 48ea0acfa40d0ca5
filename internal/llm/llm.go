package llm

import "context"

// Usage tracks the tokens consumed by a request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   Usage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// ImageGenerator is an interface for generating a single image from a text
// description. Implementations return an inline data URI.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
