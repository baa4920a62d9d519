package carbon_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rahul-1611/AEROCARBON/internal/carbon"
	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
	"github.com/Rahul-1611/AEROCARBON/mocks"
)

func newEngine(t *testing.T) (*carbon.Engine, *mocks.MockFactorRepo, *mocks.MockGeocoder) {
	t.Helper()
	factors := new(mocks.MockFactorRepo)
	geocoder := new(mocks.MockGeocoder)
	return carbon.NewEngine(factors, geocoder), factors, geocoder
}

func TestCalculate_ExactFactorMatch(t *testing.T) {
	engine, factors, _ := newEngine(t)

	factors.On("GetByCode", mock.Anything, "518210").
		Return(&domain.EmissionFactor{
			NAICSCode:      "518210",
			Title:          "Data Processing, Hosting, and Related Services",
			FactorKgPerUSD: 0.045,
		}, nil)

	mapping := &domain.MappingResult{
		NAICSCode:     "518210",
		ScopeCategory: "Cloud Services",
		StandardizedLineItems: []domain.StandardizedLineItem{
			{LineItem: domain.LineItem{Description: "Compute", Total: 600}},
			{LineItem: domain.LineItem{Description: "Storage", Total: 400}},
		},
	}
	extraction := &domain.ExtractionResult{GrandTotal: 1000}

	result, err := engine.Calculate(context.Background(), mapping, extraction)
	require.NoError(t, err)

	assert.True(t, result.IsVerifiedMatch)
	assert.Equal(t, "518210", result.NAICSCode)
	assert.InDelta(t, 45.0, result.SpendBasedKgCO2e, 1e-9)
	assert.Equal(t, "Scope 3", result.Scope)
	require.Len(t, result.LineLevelBreakdown, 2)
	assert.InDelta(t, 27.0, result.LineLevelBreakdown[0].ItemEmissions, 1e-9)
	assert.InDelta(t, 18.0, result.LineLevelBreakdown[1].ItemEmissions, 1e-9)
}

func TestCalculate_FuzzyTitleFallback(t *testing.T) {
	engine, factors, _ := newEngine(t)

	factors.On("GetByCode", mock.Anything, "999999").
		Return(nil, domain.ErrFactorNotFound)
	factors.On("FindByTitleLike", mock.Anything, "%Air Transportation%").
		Return(&domain.EmissionFactor{
			NAICSCode:      "481111",
			Title:          "Scheduled Passenger Air Transportation",
			FactorKgPerUSD: 1.2,
		}, nil)

	mapping := &domain.MappingResult{NAICSCode: "999999", ScopeCategory: "Air Transportation"}
	extraction := &domain.ExtractionResult{GrandTotal: 100}

	result, err := engine.Calculate(context.Background(), mapping, extraction)
	require.NoError(t, err)

	assert.True(t, result.IsVerifiedMatch)
	assert.Equal(t, "481111", result.NAICSCode)
	assert.InDelta(t, 120.0, result.SpendBasedKgCO2e, 1e-9)
}

func TestCalculate_StaticFallbackWhenUnmatched(t *testing.T) {
	engine, factors, _ := newEngine(t)

	factors.On("GetByCode", mock.Anything, mock.Anything).
		Return(nil, domain.ErrFactorNotFound)
	factors.On("FindByTitleLike", mock.Anything, mock.Anything).
		Return(nil, domain.ErrFactorNotFound)

	mapping := &domain.MappingResult{NAICSCode: "123456", ScopeCategory: "General Procurement"}
	extraction := &domain.ExtractionResult{GrandTotal: 1000}

	result, err := engine.Calculate(context.Background(), mapping, extraction)
	require.NoError(t, err)

	assert.False(t, result.IsVerifiedMatch)
	assert.InDelta(t, 30.0, result.SpendBasedKgCO2e, 1e-9)
	assert.InDelta(t, 30.0, result.TotalKgCO2e, 1e-9)
}

func TestCalculate_DefaultFactorWithoutCode(t *testing.T) {
	engine, _, _ := newEngine(t)

	// No NAICS code: the repository is never consulted.
	mapping := &domain.MappingResult{ScopeCategory: "Unmapped Category"}
	extraction := &domain.ExtractionResult{GrandTotal: 200}

	result, err := engine.Calculate(context.Background(), mapping, extraction)
	require.NoError(t, err)

	assert.False(t, result.IsVerifiedMatch)
	assert.InDelta(t, 200*carbon.DefaultFactor, result.SpendBasedKgCO2e, 1e-9)
}

func TestCalculate_RepositoryErrorDegradesToFallback(t *testing.T) {
	engine, factors, _ := newEngine(t)

	factors.On("GetByCode", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	mapping := &domain.MappingResult{NAICSCode: "518210", ScopeCategory: "Cloud Services"}
	extraction := &domain.ExtractionResult{GrandTotal: 100}

	result, err := engine.Calculate(context.Background(), mapping, extraction)
	require.NoError(t, err)

	assert.False(t, result.IsVerifiedMatch)
	assert.InDelta(t, 4.5, result.SpendBasedKgCO2e, 1e-9)
}

func TestCalculate_AirShipmentLogistics(t *testing.T) {
	engine, factors, geocoder := newEngine(t)

	factors.On("GetByCode", mock.Anything, mock.Anything).
		Return(nil, domain.ErrFactorNotFound)
	factors.On("FindByTitleLike", mock.Anything, mock.Anything).
		Return(nil, domain.ErrFactorNotFound)

	// Roughly 500km apart along a meridian: 4.5 degrees of latitude.
	geocoder.On("Geocode", mock.Anything, "Berlin, Germany").
		Return(&port.Location{Latitude: 48.0, Longitude: 10.0}, nil)
	geocoder.On("Geocode", mock.Anything, "Munich, Germany").
		Return(&port.Location{Latitude: 52.5, Longitude: 10.0}, nil)

	mapping := &domain.MappingResult{ScopeCategory: "General Procurement", NAICSCode: "123456"}
	extraction := &domain.ExtractionResult{
		GrandTotal: 0,
		ShippingDetails: &domain.ShippingDetails{
			OriginAddress:      "Berlin, Germany",
			DestinationAddress: "Munich, Germany",
			ShippingMethod:     "Air Freight",
			WeightKG:           20,
		},
	}

	result, err := engine.Calculate(context.Background(), mapping, extraction)
	require.NoError(t, err)

	require.NotNil(t, result.DistanceKM)
	assert.InDelta(t, 500.0, *result.DistanceKM, 2.0)
	// (20kg / 1000) * ~500km * 0.8 ≈ 8 kg CO2e
	assert.InDelta(t, 8.0, result.LogisticsKgCO2e, 0.1)
	assert.InDelta(t, result.SpendBasedKgCO2e+result.LogisticsKgCO2e, result.TotalKgCO2e, 1e-9)
}

func TestCalculate_GeocodeMissSkipsLogistics(t *testing.T) {
	engine, factors, geocoder := newEngine(t)

	factors.On("GetByCode", mock.Anything, mock.Anything).
		Return(nil, domain.ErrFactorNotFound)
	factors.On("FindByTitleLike", mock.Anything, mock.Anything).
		Return(nil, domain.ErrFactorNotFound)

	geocoder.On("Geocode", mock.Anything, mock.Anything).Return(nil, nil)

	mapping := &domain.MappingResult{ScopeCategory: "General Procurement", NAICSCode: "1"}
	extraction := &domain.ExtractionResult{
		GrandTotal:      100,
		VendorAddress:   "Nowhere Street 1",
		ReceiverAddress: "Elsewhere Road 2",
	}

	result, err := engine.Calculate(context.Background(), mapping, extraction)
	require.NoError(t, err)

	assert.Zero(t, result.LogisticsKgCO2e)
	assert.Nil(t, result.DistanceKM)
}

func TestCalculate_GeocodeErrorSkipsLogistics(t *testing.T) {
	engine, factors, geocoder := newEngine(t)

	factors.On("GetByCode", mock.Anything, mock.Anything).
		Return(nil, domain.ErrFactorNotFound)
	factors.On("FindByTitleLike", mock.Anything, mock.Anything).
		Return(nil, domain.ErrFactorNotFound)

	geocoder.On("Geocode", mock.Anything, mock.Anything).
		Return(nil, errors.New("nominatim timeout"))

	mapping := &domain.MappingResult{ScopeCategory: "General Procurement", NAICSCode: "1"}
	extraction := &domain.ExtractionResult{
		GrandTotal: 100,
		ShippingDetails: &domain.ShippingDetails{
			OriginAddress:      "A",
			DestinationAddress: "B",
		},
	}

	result, err := engine.Calculate(context.Background(), mapping, extraction)
	require.NoError(t, err)

	assert.Zero(t, result.LogisticsKgCO2e)
	assert.Nil(t, result.DistanceKM)
}

func TestCalculate_MissingAddressesSkipGeocoding(t *testing.T) {
	engine, factors, geocoder := newEngine(t)

	factors.On("GetByCode", mock.Anything, mock.Anything).
		Return(nil, domain.ErrFactorNotFound)
	factors.On("FindByTitleLike", mock.Anything, mock.Anything).
		Return(nil, domain.ErrFactorNotFound)

	mapping := &domain.MappingResult{ScopeCategory: "General Procurement", NAICSCode: "1"}
	extraction := &domain.ExtractionResult{GrandTotal: 100}

	result, err := engine.Calculate(context.Background(), mapping, extraction)
	require.NoError(t, err)

	assert.Zero(t, result.LogisticsKgCO2e)
	geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}
