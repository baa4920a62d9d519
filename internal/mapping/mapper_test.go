package mapping_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/llm"
	"github.com/Rahul-1611/AEROCARBON/internal/mapping"
	"github.com/Rahul-1611/AEROCARBON/mocks"
)

func fastRetry() llm.RetryConfig {
	return llm.RetryConfig{MaxAttempts: 3, Base: time.Millisecond, Cap: time.Millisecond}
}

func sampleExtraction() *domain.ExtractionResult {
	return &domain.ExtractionResult{
		VendorName: "AWS",
		GrandTotal: 500,
		LineItems: []domain.LineItem{
			{Description: "EC2 instances", Total: 300},
			{Description: "S3 storage", Total: 200},
		},
		IsStandardInvoice: true,
	}
}

func TestMapInvoice_ClassifiesAndAnnotatesLineItems(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(`{
		"naics_code": "518210",
		"naics_title": "Data Processing, Hosting, and Related Services",
		"vendor_canonical": "Amazon Web Services",
		"mapping_confidence": 0.93
	}`, nil)

	mapper := mapping.NewMapper(gen, fastRetry())
	result, err := mapper.MapInvoice(context.Background(), sampleExtraction())
	require.NoError(t, err)

	assert.Equal(t, "Amazon Web Services", result.VendorCanonical)
	assert.Equal(t, "518210", result.NAICSCode)
	assert.Equal(t, "Data Processing, Hosting, and Related Services", result.ScopeCategory)
	assert.Equal(t, 0.93, result.MappingConfidence)
	assert.Equal(t, mapping.RuleVersion, result.RuleVersion)
	require.Len(t, result.StandardizedLineItems, 2)
	assert.Equal(t, "518210", result.StandardizedLineItems[0].NAICSCode)
	assert.Equal(t, "EC2 instances", result.StandardizedLineItems[0].Description)
}

func TestMapInvoice_DefaultsForMissingFields(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(`{
		"naics_code": "511210",
		"naics_title": "Software Publishers"
	}`, nil)

	mapper := mapping.NewMapper(gen, fastRetry())
	result, err := mapper.MapInvoice(context.Background(), sampleExtraction())
	require.NoError(t, err)

	assert.Equal(t, "AWS", result.VendorCanonical)
	assert.Equal(t, 0.7, result.MappingConfidence)
}

func TestMapInvoice_ErrorPropagatesAfterRetries(t *testing.T) {
	gen := new(mocks.MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).
		Return("", errors.New("provider down"))

	mapper := mapping.NewMapper(gen, fastRetry())
	_, err := mapper.MapInvoice(context.Background(), sampleExtraction())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "semantic mapping failed")
	gen.AssertNumberOfCalls(t, "Generate", 3)
}

func TestNeutralResult(t *testing.T) {
	result := mapping.NeutralResult()

	assert.Equal(t, "Unknown", result.VendorCanonical)
	assert.Equal(t, "Miscellaneous", result.ScopeCategory)
	assert.Equal(t, "N/A", result.RuleVersion)
	assert.Empty(t, result.StandardizedLineItems)
	assert.Zero(t, result.MappingConfidence)
}
