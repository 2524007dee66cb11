package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

type AnalysisRepository struct {
	pool *pgxpool.Pool
}

var _ ports.AnalysisRepository = (*AnalysisRepository)(nil)

func NewAnalysisRepository(pool *pgxpool.Pool) ports.AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

const analysisColumns = `id, frame_id, crowd_density, estimated_people, risk_level, detected_behaviors, confidence, created_at`

func scanAnalysis(row pgx.Row) (*domain.Analysis, error) {
	var (
		analysis     domain.Analysis
		id, frameID  pgtype.UUID
		crowdDensity string
		riskLevel    string
		createdAt    pgtype.Timestamptz
	)
	err := row.Scan(&id, &frameID, &crowdDensity, &analysis.EstimatedPeople, &riskLevel,
		&analysis.DetectedBehaviors, &analysis.Confidence, &createdAt)
	if err != nil {
		return nil, err
	}
	analysis.ID = uuidFromPg(id)
	analysis.FrameID = uuidFromPg(frameID)
	analysis.CrowdDensity = domain.RiskLevel(crowdDensity)
	analysis.RiskLevel = domain.RiskLevel(riskLevel)
	analysis.CreatedAt = timeFromPg(createdAt)
	return &analysis, nil
}

func (r *AnalysisRepository) Create(ctx context.Context, analysis *domain.Analysis) (*domain.Analysis, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO analyses (id, frame_id, crowd_density, estimated_people, risk_level, detected_behaviors, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+analysisColumns,
		pgUUID(analysis.ID), pgUUID(analysis.FrameID), string(analysis.CrowdDensity),
		analysis.EstimatedPeople, string(analysis.RiskLevel), analysis.DetectedBehaviors,
		analysis.Confidence, pgTime(analysis.CreatedAt),
	)
	return scanAnalysis(row)
}
