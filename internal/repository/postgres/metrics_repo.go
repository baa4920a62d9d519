package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

type metricsRepo struct {
	db *sqlx.DB
}

// NewMetricsRepo creates a new PostgreSQL-backed MetricsRepository.
func NewMetricsRepo(db *sqlx.DB) port.MetricsRepository {
	return &metricsRepo{db: db}
}

const metricsTotalsQuery = `SELECT
	COUNT(CASE WHEN status = 'finalized' THEN 1 END) AS total_processed,
	COUNT(CASE WHEN status = 'failed' THEN 1 END) AS total_failed,
	COUNT(*) AS total_documents
FROM documents`

const topCategoriesQuery = `SELECT payload->'carbon'->>'category' AS category
FROM final_results
WHERE payload->'carbon'->>'category' IS NOT NULL
GROUP BY category
ORDER BY COUNT(*) DESC
LIMIT 3`

const topNAICSQuery = `SELECT payload->'carbon'->>'naics_code' AS code
FROM final_results
WHERE COALESCE(payload->'carbon'->>'naics_code', '') <> ''
GROUP BY code
ORDER BY COUNT(*) DESC
LIMIT 3`

func (r *metricsRepo) Summary(ctx context.Context) (*domain.MetricsSummary, error) {
	var totals struct {
		TotalProcessed int `db:"total_processed"`
		TotalFailed    int `db:"total_failed"`
		TotalDocuments int `db:"total_documents"`
	}
	if err := r.db.GetContext(ctx, &totals, metricsTotalsQuery); err != nil {
		return nil, fmt.Errorf("metricsRepo.Summary totals: %w", err)
	}

	var avgCarbon float64
	err := r.db.GetContext(ctx, &avgCarbon,
		"SELECT COALESCE(AVG(carbon_kg_co2e), 0) FROM final_results")
	if err != nil {
		return nil, fmt.Errorf("metricsRepo.Summary avg: %w", err)
	}

	var categories []string
	if err := r.db.SelectContext(ctx, &categories, topCategoriesQuery); err != nil {
		return nil, fmt.Errorf("metricsRepo.Summary categories: %w", err)
	}
	var codes []string
	if err := r.db.SelectContext(ctx, &codes, topNAICSQuery); err != nil {
		return nil, fmt.Errorf("metricsRepo.Summary naics: %w", err)
	}

	summary := &domain.MetricsSummary{
		TotalProcessed: totals.TotalProcessed,
		AverageCarbon:  avgCarbon,
		TopCategories:  categories,
		TopNAICS:       codes,
	}
	terminal := totals.TotalProcessed + totals.TotalFailed
	if terminal > 0 {
		summary.FailureRate = float64(totals.TotalFailed) / float64(terminal)
	}
	return summary, nil
}

func (r *metricsRepo) ListFinalized(ctx context.Context, limit int) ([]domain.FinalResult, error) {
	var rows []struct {
		Payload     []byte    `db:"payload"`
		FinalizedAt time.Time `db:"finalized_at"`
	}
	err := r.db.SelectContext(ctx, &rows,
		"SELECT payload, finalized_at FROM final_results ORDER BY finalized_at DESC LIMIT $1",
		limit)
	if err != nil {
		return nil, fmt.Errorf("metricsRepo.ListFinalized: %w", err)
	}

	results := make([]domain.FinalResult, 0, len(rows))
	for _, row := range rows {
		var result domain.FinalResult
		if err := json.Unmarshal(row.Payload, &result); err != nil {
			return nil, fmt.Errorf("metricsRepo.ListFinalized unmarshal: %w", err)
		}
		result.FinalizedAt = row.FinalizedAt
		results = append(results, result)
	}
	return results, nil
}
