package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document represents an uploaded invoice document and its processing state.
// The raw bytes live in object storage; the row carries the reference.
type Document struct {
	ID          uuid.UUID `db:"id" json:"doc_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	ContentType string    `db:"content_type" json:"content_type"`
	FileSize    int64     `db:"file_size" json:"file_size"`
	S3Bucket    string    `db:"s3_bucket" json:"-"`
	S3Key       string    `db:"s3_key" json:"-"`
	Status      DocStatus `db:"status" json:"status"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// LineItem is a single invoice line as extracted from the document.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
	Unit        string  `json:"unit,omitempty"`
}

// ShippingDetails carries optional shipment information from the invoice.
type ShippingDetails struct {
	OriginAddress      string  `json:"origin_address,omitempty"`
	DestinationAddress string  `json:"destination_address,omitempty"`
	ShippingMethod     string  `json:"shipping_method,omitempty"`
	WeightKG           float64 `json:"weight_kg,omitempty"`
}

// ExtractionResult is the structured output of the extraction stage.
// When IsStandardInvoice is false all numeric fields are zero and
// downstream stages must short-circuit.
type ExtractionResult struct {
	VendorName           string           `json:"vendor_name"`
	VendorAddress        string           `json:"vendor_address,omitempty"`
	ReceiverName         string           `json:"receiver_name,omitempty"`
	ReceiverAddress      string           `json:"receiver_address,omitempty"`
	InvoiceNumber        string           `json:"invoice_number"`
	InvoiceDate          string           `json:"invoice_date"`
	Currency             string           `json:"currency"`
	LineItems            []LineItem       `json:"line_items"`
	ShippingDetails      *ShippingDetails `json:"shipping_details,omitempty"`
	Subtotal             float64          `json:"subtotal"`
	Tax                  float64          `json:"tax"`
	GrandTotal           float64          `json:"grand_total"`
	ExtractionConfidence float64          `json:"extraction_confidence"`
	IsStandardInvoice    bool             `json:"is_standard_invoice"`
}

// StandardizedLineItem is an extracted line item annotated with its
// resolved taxonomy classification.
type StandardizedLineItem struct {
	LineItem
	MappedCategory string `json:"mapped_category"`
	NAICSCode      string `json:"naics_code"`
}

// MappingResult is the output of the taxonomy mapping stage.
type MappingResult struct {
	VendorCanonical       string                 `json:"vendor_canonical"`
	StandardizedLineItems []StandardizedLineItem `json:"standardized_line_items"`
	ScopeCategory         string                 `json:"scope_category"`
	NAICSCode             string                 `json:"naics_code,omitempty"`
	MappingConfidence     float64                `json:"mapping_confidence"`
	RuleVersion           string                 `json:"rule_version"`
}

// LineEmission is the emissions attributed to a single line item.
type LineEmission struct {
	Description   string  `json:"description"`
	ItemEmissions float64 `json:"item_emissions"`
	FactorUsed    float64 `json:"factor_used"`
}

// CarbonResult is the output of the carbon calculation stage.
// Invariant: TotalKgCO2e == SpendBasedKgCO2e + LogisticsKgCO2e.
type CarbonResult struct {
	TotalKgCO2e        float64        `json:"total_kg_co2e"`
	SpendBasedKgCO2e   float64        `json:"spend_based_kg_co2e"`
	LogisticsKgCO2e    float64        `json:"logistics_kg_co2e"`
	DistanceKM         *float64       `json:"distance_km,omitempty"`
	Scope              string         `json:"scope"`
	Category           string         `json:"category"`
	NAICSCode          string         `json:"naics_code,omitempty"`
	IsVerifiedMatch    bool           `json:"is_verified_match"`
	LineLevelBreakdown []LineEmission `json:"line_level_breakdown"`
}

// AuditResult is the output of the audit stage.
type AuditResult struct {
	IsValid         bool     `json:"is_valid"`
	AuditFlags      []string `json:"audit_flags"`
	ConfidenceScore float64  `json:"confidence_score"`
}

// FinalResult aggregates all stage outputs for a finalized document.
// Immutable once written.
type FinalResult struct {
	DocID       uuid.UUID        `json:"doc_id"`
	Extraction  ExtractionResult `json:"extraction"`
	Mapping     MappingResult    `json:"mapping"`
	Carbon      CarbonResult     `json:"carbon"`
	Audit       AuditResult      `json:"audit"`
	FinalizedAt time.Time        `json:"finalized_ts"`
}

// ErrorRecord is an append-only entry in the pipeline error log.
type ErrorRecord struct {
	ID         uuid.UUID `db:"id" json:"error_id"`
	DocID      uuid.UUID `db:"doc_id" json:"doc_id"`
	Stage      string    `db:"stage" json:"stage"`
	Message    string    `db:"message" json:"message"`
	RetryCount int       `db:"retry_count" json:"retry_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// MetricsSummary aggregates processing statistics across all documents.
type MetricsSummary struct {
	TotalProcessed int      `json:"total_processed"`
	AverageCarbon  float64  `json:"average_carbon"`
	FailureRate    float64  `json:"failure_rate"`
	TopCategories  []string `json:"top_categories"`
	TopNAICS       []string `json:"top_naics"`
}

// EmissionFactor is a row in the supply-chain emission factor table,
// keyed by 2017 NAICS code. FactorKgPerUSD is kg CO2e per dollar of spend.
type EmissionFactor struct {
	NAICSCode      string  `db:"naics_code" json:"naics_code"`
	Title          string  `db:"title" json:"title"`
	FactorKgPerUSD float64 `db:"factor_kg_per_usd" json:"factor_kg_per_usd"`
}
