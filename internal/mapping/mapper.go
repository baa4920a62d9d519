// Package mapping implements the taxonomy mapping stage: an extracted
// invoice is classified into the 2017 NAICS taxonomy by a semantic
// classifier.
package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/llm"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

// RuleVersion tags MappingResults with the classification scheme in use.
const RuleVersion = "2.0.0 (Semantic)"

const systemPrompt = `You are a specialized Sustainability Data Scientist.
Your task is to map invoice data (vendor name and line items) to the 2017 NAICS (North American Industry Classification System) taxonomy.

Return STRICT JSON only.

JSON Structure:
{
    "naics_code": "6-digit string",
    "naics_title": "string",
    "vendor_canonical": "string (the standardized brand name of the vendor)",
    "mapping_confidence": float (0.0 to 1.0)
}

Guidelines:
1. Analyze the vendor name carefully.
2. Analyze line items to understand the primary industry of the transaction.
3. Pick the 6-digit NAICS code that most accurately fits the transaction.`

// Mapper classifies invoices via an injected text generator.
type Mapper struct {
	gen   port.TextGenerator
	retry llm.RetryConfig
}

// NewMapper creates a Mapper with the given generator and retry envelope.
func NewMapper(gen port.TextGenerator, retry llm.RetryConfig) *Mapper {
	return &Mapper{gen: gen, retry: retry}
}

// classifierResponse models the strict-JSON classifier contract.
type classifierResponse struct {
	NAICSCode         string  `json:"naics_code"`
	NAICSTitle        string  `json:"naics_title"`
	VendorCanonical   string  `json:"vendor_canonical"`
	MappingConfidence float64 `json:"mapping_confidence"`
}

// MapInvoice classifies the extraction into a NAICS category. It is only
// called for standard invoices, and is fail-fatal: once retries are
// exhausted the error propagates, because downstream emissions figures
// require a category.
func (m *Mapper) MapInvoice(ctx context.Context, extraction *domain.ExtractionResult) (*domain.MappingResult, error) {
	cfg := m.retry
	cfg.OnRetry = func(attempt int, err error) {
		log.Printf("mapping.Mapper: attempt %d failed, retrying: %v", attempt, err)
	}

	resp, err := llm.Retry(ctx, cfg, func(ctx context.Context) (*classifierResponse, error) {
		return m.mapOnce(ctx, extraction)
	})
	if err != nil {
		return nil, fmt.Errorf("semantic mapping failed: %w", err)
	}

	canonical := resp.VendorCanonical
	if canonical == "" {
		canonical = extraction.VendorName
	}
	confidence := resp.MappingConfidence
	if confidence == 0 {
		confidence = 0.7
	}

	standardized := make([]domain.StandardizedLineItem, 0, len(extraction.LineItems))
	for _, item := range extraction.LineItems {
		standardized = append(standardized, domain.StandardizedLineItem{
			LineItem:       item,
			MappedCategory: resp.NAICSTitle,
			NAICSCode:      resp.NAICSCode,
		})
	}

	return &domain.MappingResult{
		VendorCanonical:       canonical,
		StandardizedLineItems: standardized,
		ScopeCategory:         resp.NAICSTitle,
		NAICSCode:             resp.NAICSCode,
		MappingConfidence:     confidence,
		RuleVersion:           RuleVersion,
	}, nil
}

func (m *Mapper) mapOnce(ctx context.Context, extraction *domain.ExtractionResult) (*classifierResponse, error) {
	summary, err := json.Marshal(map[string]interface{}{
		"vendor_name": extraction.VendorName,
		"line_items":  extraction.LineItems,
		"grand_total": extraction.GrandTotal,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling extraction summary: %w", err)
	}

	raw, err := m.gen.Generate(ctx, port.GenerateInput{
		SystemPrompt: systemPrompt,
		Prompt:       fmt.Sprintf("Identify the NAICS code for this invoice data: %s", summary),
	})
	if err != nil {
		return nil, fmt.Errorf("generating classification: %w", err)
	}

	var resp classifierResponse
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &resp); err != nil {
		return nil, fmt.Errorf("parsing classifier response: %w", err)
	}
	return &resp, nil
}

// NeutralResult is the synthesized MappingResult used when a document is
// not a standard invoice and the classifier must not be called.
func NeutralResult() *domain.MappingResult {
	return &domain.MappingResult{
		VendorCanonical:       "Unknown",
		StandardizedLineItems: []domain.StandardizedLineItem{},
		ScopeCategory:         "Miscellaneous",
		MappingConfidence:     0.0,
		RuleVersion:           "N/A",
	}
}
