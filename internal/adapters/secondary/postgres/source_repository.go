package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

type SourceRepository struct {
	pool *pgxpool.Pool
}

var _ ports.SourceRepository = (*SourceRepository)(nil)

func NewSourceRepository(pool *pgxpool.Pool) ports.SourceRepository {
	return &SourceRepository{pool: pool}
}

const sourceColumns = `id, source_id, name, type, location, lat, lng, protocol, status, created_at`

func scanSource(row pgx.Row) (*domain.Source, error) {
	var (
		source     domain.Source
		id         pgtype.UUID
		sourceType string
		lat, lng   pgtype.Float8
		createdAt  pgtype.Timestamptz
	)
	err := row.Scan(&id, &source.SourceID, &source.Name, &sourceType, &source.Location,
		&lat, &lng, &source.Protocol, &source.Status, &createdAt)
	if err != nil {
		return nil, err
	}
	source.ID = uuidFromPg(id)
	source.Type = domain.SourceType(sourceType)
	source.Lat = floatPtrFromPg(lat)
	source.Lng = floatPtrFromPg(lng)
	source.CreatedAt = timeFromPg(createdAt)
	return &source, nil
}

func (r *SourceRepository) Create(ctx context.Context, source *domain.Source) (*domain.Source, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO sources (id, source_id, name, type, location, lat, lng, protocol, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+sourceColumns,
		pgUUID(source.ID), source.SourceID, source.Name, string(source.Type), source.Location,
		pgFloatPtr(source.Lat), pgFloatPtr(source.Lng), source.Protocol, source.Status, pgTime(source.CreatedAt),
	)

	created, err := scanSource(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

func (r *SourceRepository) GetBySourceID(ctx context.Context, sourceID string) (*domain.Source, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+sourceColumns+` FROM sources WHERE source_id = $1`, sourceID)

	source, err := scanSource(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSourceNotFound
		}
		return nil, err
	}
	return source, nil
}

func (r *SourceRepository) List(ctx context.Context) ([]*domain.Source, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx,
		`SELECT `+sourceColumns+` FROM sources ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sources := make([]*domain.Source, 0)
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}
