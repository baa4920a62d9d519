package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

type errorRepo struct {
	db *sqlx.DB
}

// NewErrorRepo creates a new PostgreSQL-backed ErrorRepository.
func NewErrorRepo(db *sqlx.DB) port.ErrorRepository {
	return &errorRepo{db: db}
}

func (r *errorRepo) Insert(ctx context.Context, rec *domain.ErrorRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now().UTC()

	query := `INSERT INTO error_log (
		id, doc_id, stage, message, retry_count, created_at
	) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.DocID, rec.Stage, rec.Message, rec.RetryCount, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("errorRepo.Insert: %w", err)
	}
	return nil
}
