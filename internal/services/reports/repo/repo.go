// Package repo provides clickhouse access for report rollups
package repo

import (
	"context"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/store"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/domain"
)

// Trends is the minimal rollup read surface
type Trends interface {
	Monthly(ctx context.Context) ([]domain.TrendRow, error)
}

// NewCH returns a Trends reader over the clickhouse seam
func NewCH(ch store.Clickhouse) Trends { return &chTrends{ch: ch} }

type chTrends struct{ ch store.Clickhouse }

func (r *chTrends) Monthly(ctx context.Context) ([]domain.TrendRow, error) {
	// FINAL collapses replaced rows so each month appears once
	const sql = `
SELECT month, total, submitted, in_progress, resolved, resolution_rate, mean_turnaround_days
FROM complaint_monthly FINAL
ORDER BY month ASC
`
	rows, err := r.ch.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.TrendRow
	for rows.Next() {
		var tr domain.TrendRow
		if err := rows.Scan(
			&tr.Month, &tr.Total, &tr.Submitted, &tr.InProgress, &tr.Resolved,
			&tr.ResolutionRate, &tr.MeanTurnaroundDays,
		); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}
