package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

type resultRepo struct {
	db *sqlx.DB
}

// NewResultRepo creates a new PostgreSQL-backed ResultRepository.
func NewResultRepo(db *sqlx.DB) port.ResultRepository {
	return &resultRepo{db: db}
}

// Insert stores a finalized result. The doc_id column carries a UNIQUE
// constraint, so a second finalization of the same document is rejected
// with ErrAlreadyFinalized instead of silently overwriting.
func (r *resultRepo) Insert(ctx context.Context, result *domain.FinalResult, ruleVersion, factorVersion string) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("resultRepo.Insert marshal: %w", err)
	}
	flags, err := json.Marshal(result.Audit.AuditFlags)
	if err != nil {
		return fmt.Errorf("resultRepo.Insert flags marshal: %w", err)
	}

	query := `INSERT INTO final_results (
		id, doc_id, payload, carbon_kg_co2e, confidence_score,
		audit_flags, rule_version, factor_version, finalized_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		uuid.New(), result.DocID, payload, result.Carbon.TotalKgCO2e,
		result.Audit.ConfidenceScore, flags, ruleVersion, factorVersion,
		result.FinalizedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "doc_id") {
			return domain.ErrAlreadyFinalized
		}
		return fmt.Errorf("resultRepo.Insert: %w", err)
	}
	return nil
}

func (r *resultRepo) GetByDocID(ctx context.Context, docID uuid.UUID) (*domain.FinalResult, error) {
	var row struct {
		Payload     []byte    `db:"payload"`
		FinalizedAt time.Time `db:"finalized_at"`
	}
	err := r.db.GetContext(ctx, &row,
		"SELECT payload, finalized_at FROM final_results WHERE doc_id = $1", docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResultPending
		}
		return nil, fmt.Errorf("resultRepo.GetByDocID: %w", err)
	}

	var result domain.FinalResult
	if err := json.Unmarshal(row.Payload, &result); err != nil {
		return nil, fmt.Errorf("resultRepo.GetByDocID unmarshal: %w", err)
	}
	result.FinalizedAt = row.FinalizedAt
	return &result, nil
}
