package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

type factorRepo struct {
	db *sqlx.DB
}

// NewFactorRepo creates a new PostgreSQL-backed FactorRepository.
func NewFactorRepo(db *sqlx.DB) port.FactorRepository {
	return &factorRepo{db: db}
}

func (r *factorRepo) GetByCode(ctx context.Context, naicsCode string) (*domain.EmissionFactor, error) {
	var factor domain.EmissionFactor
	err := r.db.GetContext(ctx, &factor,
		"SELECT naics_code, title, factor_kg_per_usd FROM emission_factors WHERE naics_code = $1",
		naicsCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFactorNotFound
		}
		return nil, fmt.Errorf("factorRepo.GetByCode: %w", err)
	}
	return &factor, nil
}

func (r *factorRepo) FindByTitleLike(ctx context.Context, pattern string) (*domain.EmissionFactor, error) {
	var factor domain.EmissionFactor
	err := r.db.GetContext(ctx, &factor,
		"SELECT naics_code, title, factor_kg_per_usd FROM emission_factors WHERE title ILIKE $1 LIMIT 1",
		pattern)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFactorNotFound
		}
		return nil, fmt.Errorf("factorRepo.FindByTitleLike: %w", err)
	}
	return &factor, nil
}
