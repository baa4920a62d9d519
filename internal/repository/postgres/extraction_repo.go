package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

type extractionRepo struct {
	db *sqlx.DB
}

// NewExtractionRepo creates a new PostgreSQL-backed ExtractionRepository.
func NewExtractionRepo(db *sqlx.DB) port.ExtractionRepository {
	return &extractionRepo{db: db}
}

func (r *extractionRepo) Insert(ctx context.Context, docID uuid.UUID, result *domain.ExtractionResult, model, version string) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("extractionRepo.Insert marshal: %w", err)
	}

	query := `INSERT INTO extractions (
		id, doc_id, extracted_json, extraction_conf, extraction_model, version, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		uuid.New(), docID, payload, result.ExtractionConfidence, model, version, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("extractionRepo.Insert: %w", err)
	}
	return nil
}
