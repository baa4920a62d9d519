// Package carbon implements the carbon calculation stage: emission factor
// resolution, spend-based emissions, and logistics emissions.
package carbon

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

// DefaultFactor is the generic spend-based fallback (kg CO2e per USD)
// applied when no table or category match is found.
const DefaultFactor = 0.03

// fallbackFactors keys the static fallback table by scope category.
var fallbackFactors = map[string]float64{
	"Cloud Services":      0.045,
	"Business Travel":     1.2,
	"Software & Services": 0.01,
	"General Procurement": 0.03,
}

// Engine computes CarbonResults from mapping and extraction output.
type Engine struct {
	factors  port.FactorRepository
	geocoder port.Geocoder
}

// NewEngine creates a carbon Engine.
func NewEngine(factors port.FactorRepository, geocoder port.Geocoder) *Engine {
	return &Engine{factors: factors, geocoder: geocoder}
}

// Calculate resolves an emission factor, computes spend-based and
// logistics emissions, and builds the per-line breakdown. Geocoding
// failures degrade silently to zero logistics emissions; factor lookup
// errors degrade to the fallback chain. Anything else propagates.
func (e *Engine) Calculate(ctx context.Context, mapping *domain.MappingResult, extraction *domain.ExtractionResult) (*domain.CarbonResult, error) {
	if mapping == nil || extraction == nil {
		return nil, fmt.Errorf("carbon: mapping and extraction are required")
	}

	factor, naicsCode, category, verified := e.resolveFactor(ctx, mapping)

	spendBased := extraction.GrandTotal * factor

	logistics, distanceKM := e.logisticsEmissions(ctx, extraction)

	breakdown := make([]domain.LineEmission, 0, len(mapping.StandardizedLineItems))
	for _, item := range mapping.StandardizedLineItems {
		breakdown = append(breakdown, domain.LineEmission{
			Description:   item.Description,
			ItemEmissions: item.Total * factor,
			FactorUsed:    factor,
		})
	}

	return &domain.CarbonResult{
		TotalKgCO2e:        spendBased + logistics,
		SpendBasedKgCO2e:   spendBased,
		LogisticsKgCO2e:    logistics,
		DistanceKM:         distanceKM,
		Scope:              "Scope 3",
		Category:           category,
		NAICSCode:          naicsCode,
		IsVerifiedMatch:    verified,
		LineLevelBreakdown: breakdown,
	}, nil
}

// resolveFactor walks the lookup chain: exact NAICS match, fuzzy title
// match, static category fallback, generic default. Repository errors are
// treated as misses, never propagated.
func (e *Engine) resolveFactor(ctx context.Context, mapping *domain.MappingResult) (factor float64, naicsCode, category string, verified bool) {
	factor = DefaultFactor
	naicsCode = mapping.NAICSCode
	category = mapping.ScopeCategory

	if fb, ok := fallbackFactors[mapping.ScopeCategory]; ok {
		factor = fb
	}

	if mapping.NAICSCode == "" {
		return factor, naicsCode, category, false
	}

	ef, err := e.factors.GetByCode(ctx, mapping.NAICSCode)
	if err == nil {
		log.Printf("carbon.Engine: verified factor for NAICS %s: %v", mapping.NAICSCode, ef.FactorKgPerUSD)
		return ef.FactorKgPerUSD, ef.NAICSCode, ef.Title, true
	}
	if !errors.Is(err, domain.ErrFactorNotFound) {
		log.Printf("carbon.Engine: factor lookup failed, using fallback: %v", err)
		return factor, naicsCode, category, false
	}

	ef, err = e.factors.FindByTitleLike(ctx, "%"+mapping.ScopeCategory+"%")
	if err == nil {
		return ef.FactorKgPerUSD, ef.NAICSCode, ef.Title, true
	}
	if !errors.Is(err, domain.ErrFactorNotFound) {
		log.Printf("carbon.Engine: fuzzy factor lookup failed, using fallback: %v", err)
	}
	return factor, naicsCode, category, false
}
