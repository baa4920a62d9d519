// Package extract implements the invoice extraction stage: raw document
// bytes in, structured ExtractionResult out.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/llm"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

// Extractor turns raw invoice bytes into an ExtractionResult via an
// injected text generator.
type Extractor struct {
	gen   port.TextGenerator
	retry llm.RetryConfig
}

// NewExtractor creates an Extractor with the given generator and retry envelope.
func NewExtractor(gen port.TextGenerator, retry llm.RetryConfig) *Extractor {
	return &Extractor{gen: gen, retry: retry}
}

// Extract never fails: transport and parse errors are retried, and once
// retries are exhausted a degraded non-invoice result is returned with
// StageOutcomeFallback instead of an error.
func (e *Extractor) Extract(ctx context.Context, content []byte, contentType string) (*domain.ExtractionResult, domain.StageOutcome) {
	cfg := e.retry
	cfg.OnRetry = func(attempt int, err error) {
		log.Printf("extract.Extractor: attempt %d failed, retrying: %v", attempt, err)
	}

	result, err := llm.Retry(ctx, cfg, func(ctx context.Context) (*domain.ExtractionResult, error) {
		return e.extractOnce(ctx, content, contentType)
	})
	if err != nil {
		log.Printf("extract.Extractor: all attempts failed, returning non-invoice fallback: %v", err)
		return FallbackResult(), domain.StageOutcomeFallback
	}
	return result, domain.StageOutcomeOK
}

func (e *Extractor) extractOnce(ctx context.Context, content []byte, contentType string) (*domain.ExtractionResult, error) {
	input := port.GenerateInput{
		SystemPrompt: systemPrompt,
		Prompt:       userPrompt,
	}

	switch {
	case contentType == "application/pdf" || contentType == "image/jpeg" || contentType == "image/png":
		input.FileBytes = content
		input.MimeType = contentType
	case utf8.Valid(content):
		input.Prompt = userPrompt + "\n\n" + string(content)
	default:
		input.Prompt = userPrompt + "\n\n[Unreadable Binary Content]"
	}

	raw, err := e.gen.Generate(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("generating extraction: %w", err)
	}

	var result domain.ExtractionResult
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &result); err != nil {
		return nil, fmt.Errorf("parsing extraction response: %w", err)
	}
	clamp(&result.ExtractionConfidence)
	return &result, nil
}

// FallbackResult is the degraded ExtractionResult returned when the
// document could not be extracted: not a standard invoice, zeroed
// numerics, confidence 0.
func FallbackResult() *domain.ExtractionResult {
	return &domain.ExtractionResult{
		VendorName:           "Unknown",
		InvoiceNumber:        "N/A",
		InvoiceDate:          "1970-01-01",
		Currency:             "USD",
		LineItems:            []domain.LineItem{},
		ExtractionConfidence: 0.0,
		IsStandardInvoice:    false,
	}
}

func clamp(v *float64) {
	if *v < 0 {
		*v = 0
	}
	if *v > 1 {
		*v = 1
	}
}
