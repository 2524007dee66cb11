package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

type FrameRepository struct {
	pool *pgxpool.Pool
}

var _ ports.FrameRepository = (*FrameRepository)(nil)

func NewFrameRepository(pool *pgxpool.Pool) ports.FrameRepository {
	return &FrameRepository{pool: pool}
}

const frameColumns = `id, source_id, storage_url, width, height, fps_estimate, captured_at`

func scanFrame(row pgx.Row) (*domain.Frame, error) {
	var (
		frame      domain.Frame
		id         pgtype.UUID
		capturedAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &frame.SourceID, &frame.StorageURL, &frame.Width, &frame.Height,
		&frame.FPSEstimate, &capturedAt)
	if err != nil {
		return nil, err
	}
	frame.ID = uuidFromPg(id)
	frame.CapturedAt = timeFromPg(capturedAt)
	return &frame, nil
}

func (r *FrameRepository) Create(ctx context.Context, frame *domain.Frame) (*domain.Frame, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO frames (id, source_id, storage_url, width, height, fps_estimate, captured_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+frameColumns,
		pgUUID(frame.ID), frame.SourceID, frame.StorageURL, frame.Width, frame.Height,
		frame.FPSEstimate, pgTime(frame.CapturedAt),
	)
	return scanFrame(row)
}

func (r *FrameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Frame, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+frameColumns+` FROM frames WHERE id = $1`, pgUUID(id))

	frame, err := scanFrame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFrameNotFound
		}
		return nil, err
	}
	return frame, nil
}
