package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.UploadedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, file_name, content_type, file_size,
		s3_bucket, s3_key, status, uploaded_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.FileName, doc.ContentType, doc.FileSize,
		doc.S3Bucket, doc.S3Key, doc.Status, doc.UploadedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1", docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, limit int) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		"SELECT * FROM documents ORDER BY uploaded_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) UpdateStatus(ctx context.Context, docID uuid.UUID, status domain.DocStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE documents SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), docID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateStatus: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateStatus rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// ClaimUploaded atomically flips up to limit uploaded documents to
// ocr_processing. SKIP LOCKED lets concurrent workers claim disjoint sets.
func (r *documentRepo) ClaimUploaded(ctx context.Context, limit int) ([]domain.Document, error) {
	query := `UPDATE documents SET status = $1, updated_at = $2
		WHERE id IN (
			SELECT id FROM documents WHERE status = $3
			ORDER BY uploaded_at ASC LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs, query,
		domain.StatusOCRProcessing, time.Now().UTC(), domain.StatusUploaded, limit)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ClaimUploaded: %w", err)
	}
	return docs, nil
}
