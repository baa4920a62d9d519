package carbon

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/geo"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

// defaultWeightKG is assumed when the invoice carries no shipment weight.
const defaultWeightKG = 10.0

// Transport mode factors in kg CO2e per tonne-km.
const (
	roadFactor = 0.15
	airFactor  = 0.8
	seaFactor  = 0.02
)

// logisticsEmissions computes shipment emissions from geocoded origin and
// destination. Every failure path degrades to zero emissions: a missing
// address, a geocoding miss, or a geocoding error must never fail the stage.
func (e *Engine) logisticsEmissions(ctx context.Context, extraction *domain.ExtractionResult) (float64, *float64) {
	origin, destination := shipmentEndpoints(extraction)
	if origin == "" || destination == "" {
		return 0, nil
	}

	// The two lookups are independent; only their joint completion matters.
	var originLoc, destLoc *port.Location
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loc, err := e.geocoder.Geocode(gctx, origin)
		originLoc = loc
		return err
	})
	g.Go(func() error {
		loc, err := e.geocoder.Geocode(gctx, destination)
		destLoc = loc
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("carbon.Engine: geocoding failed, skipping logistics: %v", err)
		return 0, nil
	}
	if originLoc == nil || destLoc == nil {
		return 0, nil
	}

	distanceKM := geo.HaversineKM(
		originLoc.Latitude, originLoc.Longitude,
		destLoc.Latitude, destLoc.Longitude,
	)

	weightKG := defaultWeightKG
	if extraction.ShippingDetails != nil && extraction.ShippingDetails.WeightKG > 0 {
		weightKG = extraction.ShippingDetails.WeightKG
	}

	method := "ground"
	if extraction.ShippingDetails != nil && extraction.ShippingDetails.ShippingMethod != "" {
		method = extraction.ShippingDetails.ShippingMethod
	}

	tonneKM := (weightKG / 1000.0) * distanceKM
	emissions := tonneKM * modeFactor(method)

	log.Printf("carbon.Engine: logistics %.2fkm, %.1fkg, %s -> %.4fkg CO2e",
		distanceKM, weightKG, method, emissions)
	return emissions, &distanceKM
}

// shipmentEndpoints picks origin/destination from explicit shipping details,
// falling back to vendor and receiver addresses.
func shipmentEndpoints(extraction *domain.ExtractionResult) (origin, destination string) {
	if sd := extraction.ShippingDetails; sd != nil {
		origin = sd.OriginAddress
		destination = sd.DestinationAddress
	}
	if origin == "" {
		origin = extraction.VendorAddress
	}
	if destination == "" {
		destination = extraction.ReceiverAddress
	}
	return origin, destination
}

// modeFactor selects the transport emission factor by keyword match on the
// shipping method, defaulting to road.
func modeFactor(method string) float64 {
	m := strings.ToLower(method)
	switch {
	case strings.Contains(m, "air"):
		return airFactor
	case strings.Contains(m, "sea"), strings.Contains(m, "ocean"):
		return seaFactor
	default:
		return roadFactor
	}
}

// NeutralResult is the synthesized CarbonResult used when a document is
// not a standard invoice and no factor lookup or geocoding must occur.
func NeutralResult() *domain.CarbonResult {
	return &domain.CarbonResult{
		Scope:              "N/A",
		Category:           "N/A",
		LineLevelBreakdown: []domain.LineEmission{},
	}
}
