package port

import "context"

// GenerateInput carries one generation request to an LLM provider.
// FileBytes/MimeType are optional; when set the file is attached inline.
type GenerateInput struct {
	SystemPrompt string
	Prompt       string
	FileBytes    []byte
	MimeType     string
}

// TextGenerator abstracts an LLM text-generation capability. Implementations
// are constructed once with immutable configuration and injected into the
// stages that need them.
type TextGenerator interface {
	Generate(ctx context.Context, input GenerateInput) (string, error)
}
