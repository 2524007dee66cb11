package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

var _ ports.StatsRepository = (*StatsRepository)(nil)

func NewStatsRepository(pool *pgxpool.Pool) ports.StatsRepository {
	return &StatsRepository{pool: pool}
}

// CrowdStats aggregates the dashboard overview numbers in one round trip per
// table.
func (r *StatsRepository) CrowdStats(ctx context.Context) (*domain.CrowdStats, error) {
	db := GetDBTX(ctx, r.pool)
	stats := &domain.CrowdStats{SeverityCounts: make(map[string]int)}

	err := db.QueryRow(ctx,
		`SELECT count(*) FROM incidents WHERE status != 'closed'`).Scan(&stats.ActiveIncidents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(ctx,
		`SELECT count(*) FROM help_requests WHERE status IN ('pending', 'in_progress')`).Scan(&stats.OpenHelpRequests)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE status = 'available')
		FROM volunteers`).Scan(&stats.TotalVolunteers, &stats.AvailableVolunteers)
	if err != nil {
		return nil, err
	}

	// Latest people estimate per source, summed.
	err = db.QueryRow(ctx, `
		SELECT coalesce(sum(estimated_people), 0) FROM (
			SELECT DISTINCT ON (f.source_id) a.estimated_people
			FROM analyses a
			JOIN frames f ON f.id = a.frame_id
			ORDER BY f.source_id, a.created_at DESC
		) latest`).Scan(&stats.EstimatedPeople)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, `
		SELECT severity, count(*)
		FROM incidents
		WHERE status != 'closed'
		GROUP BY severity`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var severity string
		var count int
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, err
		}
		stats.SeverityCounts[severity] = count
	}
	return stats, rows.Err()
}
