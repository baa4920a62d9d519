package audit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rahul-1611/AEROCARBON/internal/audit"
	"github.com/Rahul-1611/AEROCARBON/internal/domain"
)

func validExtraction() *domain.ExtractionResult {
	return &domain.ExtractionResult{
		VendorName:           "Acme Corp",
		InvoiceNumber:        "INV-001",
		Subtotal:             100,
		Tax:                  8,
		GrandTotal:           108,
		ExtractionConfidence: 0.95,
		IsStandardInvoice:    true,
	}
}

func TestAudit_ValidInvoice(t *testing.T) {
	auditor := audit.NewAuditor()

	result := auditor.Audit(validExtraction(), &domain.CarbonResult{TotalKgCO2e: 42})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.AuditFlags)
	assert.Equal(t, 0.95, result.ConfidenceScore)
}

func TestAudit_MathMismatchInvalidates(t *testing.T) {
	auditor := audit.NewAuditor()
	extraction := validExtraction()
	extraction.GrandTotal = 200

	result := auditor.Audit(extraction, &domain.CarbonResult{})

	assert.False(t, result.IsValid)
	assert.Contains(t, result.AuditFlags, "Math Mismatch: Subtotal+Tax (108) != Total (200)")
}

func TestAudit_MathWithinTolerancePasses(t *testing.T) {
	auditor := audit.NewAuditor()
	extraction := validExtraction()
	extraction.GrandTotal = 108.04

	result := auditor.Audit(extraction, &domain.CarbonResult{})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.AuditFlags)
}

func TestAudit_NonStandardInvoiceShortCircuits(t *testing.T) {
	auditor := audit.NewAuditor()
	extraction := validExtraction()
	extraction.IsStandardInvoice = false
	// Would otherwise trip math and missing-field rules too.
	extraction.VendorName = ""
	extraction.GrandTotal = 999

	result := auditor.Audit(extraction, &domain.CarbonResult{TotalKgCO2e: 50000})

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Not an industry standard Invoice"}, result.AuditFlags)
	assert.Zero(t, result.ConfidenceScore)
}

func TestAudit_LowConfidenceFlagsWithoutInvalidating(t *testing.T) {
	auditor := audit.NewAuditor()
	extraction := validExtraction()
	extraction.ExtractionConfidence = 0.5

	result := auditor.Audit(extraction, &domain.CarbonResult{})

	assert.True(t, result.IsValid)
	assert.Contains(t, result.AuditFlags, "Low OCR Confidence: 0.5")
	assert.Equal(t, 0.5, result.ConfidenceScore)
}

func TestAudit_HighEmissionsFlagsWithoutInvalidating(t *testing.T) {
	auditor := audit.NewAuditor()

	result := auditor.Audit(validExtraction(), &domain.CarbonResult{TotalKgCO2e: 12500})

	assert.True(t, result.IsValid)
	assert.Contains(t, result.AuditFlags, "High Emissions Alert: 12500 kgCO2e")
}

func TestAudit_MissingCriticalFieldsInvalidate(t *testing.T) {
	auditor := audit.NewAuditor()
	extraction := validExtraction()
	extraction.VendorName = ""
	extraction.InvoiceNumber = ""

	result := auditor.Audit(extraction, &domain.CarbonResult{})

	assert.False(t, result.IsValid)
	assert.Contains(t, result.AuditFlags, "Missing Vendor Name")
	assert.Contains(t, result.AuditFlags, "Missing Invoice Number")
}
