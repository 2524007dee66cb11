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

type VolunteerRepository struct {
	pool *pgxpool.Pool
}

var _ ports.VolunteerRepository = (*VolunteerRepository)(nil)

func NewVolunteerRepository(pool *pgxpool.Pool) ports.VolunteerRepository {
	return &VolunteerRepository{pool: pool}
}

const volunteerColumns = `id, user_id, name, phone, current_zone, status, last_seen, response_time_avg`

func scanVolunteer(row pgx.Row) (*domain.Volunteer, error) {
	var (
		volunteer  domain.Volunteer
		id, userID pgtype.UUID
		status     string
		lastSeen   pgtype.Timestamptz
	)
	err := row.Scan(&id, &userID, &volunteer.Name, &volunteer.Phone, &volunteer.CurrentZone,
		&status, &lastSeen, &volunteer.ResponseTimeAvg)
	if err != nil {
		return nil, err
	}
	volunteer.ID = uuidFromPg(id)
	volunteer.UserID = uuidFromPg(userID)
	volunteer.Status = domain.VolunteerStatus(status)
	volunteer.LastSeen = timeFromPg(lastSeen)
	return &volunteer, nil
}

func (r *VolunteerRepository) Create(ctx context.Context, volunteer *domain.Volunteer) (*domain.Volunteer, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO volunteers (id, user_id, name, phone, current_zone, status, last_seen, response_time_avg)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+volunteerColumns,
		pgUUID(volunteer.ID), pgUUID(volunteer.UserID), volunteer.Name, volunteer.Phone,
		volunteer.CurrentZone, string(volunteer.Status), pgTime(volunteer.LastSeen), volunteer.ResponseTimeAvg,
	)
	return scanVolunteer(row)
}

func (r *VolunteerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Volunteer, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+volunteerColumns+` FROM volunteers WHERE id = $1`, pgUUID(id))

	volunteer, err := scanVolunteer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVolunteerNotFound
		}
		return nil, err
	}
	return volunteer, nil
}

func (r *VolunteerRepository) Update(ctx context.Context, volunteer *domain.Volunteer) (*domain.Volunteer, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		UPDATE volunteers
		SET name = $2, phone = $3, current_zone = $4, status = $5, last_seen = $6, response_time_avg = $7
		WHERE id = $1
		RETURNING `+volunteerColumns,
		pgUUID(volunteer.ID), volunteer.Name, volunteer.Phone, volunteer.CurrentZone,
		string(volunteer.Status), pgTime(volunteer.LastSeen), volunteer.ResponseTimeAvg,
	)

	updated, err := scanVolunteer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVolunteerNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *VolunteerRepository) List(ctx context.Context) ([]*domain.Volunteer, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx,
		`SELECT `+volunteerColumns+` FROM volunteers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	volunteers := make([]*domain.Volunteer, 0)
	for rows.Next() {
		volunteer, err := scanVolunteer(rows)
		if err != nil {
			return nil, err
		}
		volunteers = append(volunteers, volunteer)
	}
	return volunteers, rows.Err()
}
