package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
)

// DocumentRepository defines the contract for document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, limit int) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, docID uuid.UUID, status domain.DocStatus) error
	// ClaimUploaded atomically claims up to limit documents in "uploaded"
	// state, moving them to "ocr_processing" so concurrent workers never
	// dispatch the same document twice.
	ClaimUploaded(ctx context.Context, limit int) ([]domain.Document, error)
}

// ExtractionRepository persists per-document extraction stage output.
type ExtractionRepository interface {
	Insert(ctx context.Context, docID uuid.UUID, result *domain.ExtractionResult, model, version string) error
}

// ResultRepository persists and serves finalized pipeline results.
type ResultRepository interface {
	Insert(ctx context.Context, result *domain.FinalResult, ruleVersion, factorVersion string) error
	GetByDocID(ctx context.Context, docID uuid.UUID) (*domain.FinalResult, error)
}

// ErrorRepository appends to the pipeline error log.
type ErrorRepository interface {
	Insert(ctx context.Context, rec *domain.ErrorRecord) error
}

// FactorRepository looks up supply-chain emission factors.
type FactorRepository interface {
	// GetByCode returns the factor for an exact NAICS code match, or
	// domain.ErrFactorNotFound.
	GetByCode(ctx context.Context, naicsCode string) (*domain.EmissionFactor, error)
	// FindByTitleLike returns the first factor whose title matches the
	// pattern case-insensitively, or domain.ErrFactorNotFound.
	FindByTitleLike(ctx context.Context, pattern string) (*domain.EmissionFactor, error)
}

// MetricsRepository aggregates processing statistics for reporting.
type MetricsRepository interface {
	Summary(ctx context.Context) (*domain.MetricsSummary, error)
	ListFinalized(ctx context.Context, limit int) ([]domain.FinalResult, error)
}
