// Package audit applies validation rules over extraction and carbon
// outputs. The auditor is pure: it never touches storage or the network.
package audit

import (
	"fmt"
	"math"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
)

const (
	// confidenceThreshold is the minimum extraction confidence before a
	// document is flagged for review.
	confidenceThreshold = 0.8

	// mathTolerance allows for float rounding when checking invoice math.
	mathTolerance = 0.05

	// anomalyThresholdKg flags suspiciously high emission totals.
	anomalyThresholdKg = 10000.0
)

// Auditor validates extraction and carbon results against a fixed rule set.
type Auditor struct{}

func NewAuditor() *Auditor {
	return &Auditor{}
}

// Audit runs every rule in order and returns the accumulated result.
// Non-standard documents short-circuit with a single flag: no further
// rule may fire for them.
func (a *Auditor) Audit(extraction *domain.ExtractionResult, carbon *domain.CarbonResult) *domain.AuditResult {
	flags := []string{}
	valid := true

	if !extraction.IsStandardInvoice {
		return &domain.AuditResult{
			IsValid:         false,
			AuditFlags:      []string{"Not an industry standard Invoice"},
			ConfidenceScore: 0,
		}
	}

	if extraction.ExtractionConfidence < confidenceThreshold {
		flags = append(flags, fmt.Sprintf("Low OCR Confidence: %v", extraction.ExtractionConfidence))
	}

	calculated := extraction.Subtotal + extraction.Tax
	if math.Abs(calculated-extraction.GrandTotal) > mathTolerance {
		flags = append(flags, fmt.Sprintf("Math Mismatch: Subtotal+Tax (%v) != Total (%v)", calculated, extraction.GrandTotal))
		valid = false
	}

	if carbon.TotalKgCO2e > anomalyThresholdKg {
		flags = append(flags, fmt.Sprintf("High Emissions Alert: %v kgCO2e", carbon.TotalKgCO2e))
	}

	if extraction.VendorName == "" {
		flags = append(flags, "Missing Vendor Name")
		valid = false
	}
	if extraction.InvoiceNumber == "" {
		flags = append(flags, "Missing Invoice Number")
		valid = false
	}

	return &domain.AuditResult{
		IsValid:         valid,
		AuditFlags:      flags,
		ConfidenceScore: extraction.ExtractionConfidence,
	}
}
