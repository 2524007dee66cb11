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

type LostPersonRepository struct {
	pool *pgxpool.Pool
}

var _ ports.LostPersonRepository = (*LostPersonRepository)(nil)

func NewLostPersonRepository(pool *pgxpool.Pool) ports.LostPersonRepository {
	return &LostPersonRepository{pool: pool}
}

const lostPersonColumns = `id, report_id, person_description, image_url, embedding, age, last_seen_location, contact_info, status, created_at`

func scanLostPerson(row pgx.Row) (*domain.LostPerson, error) {
	var (
		person       domain.LostPerson
		id, reportID pgtype.UUID
		age          pgtype.Int4
		status       string
		createdAt    pgtype.Timestamptz
	)
	err := row.Scan(&id, &reportID, &person.PersonDescription, &person.ImageURL, &person.Embedding,
		&age, &person.LastSeenLocation, &person.ContactInfo, &status, &createdAt)
	if err != nil {
		return nil, err
	}
	person.ID = uuidFromPg(id)
	person.ReportID = uuidFromPg(reportID)
	if age.Valid {
		v := int(age.Int32)
		person.Age = &v
	}
	person.Status = domain.LostPersonStatus(status)
	person.CreatedAt = timeFromPg(createdAt)
	return &person, nil
}

func pgAge(age *int) pgtype.Int4 {
	if age == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*age), Valid: true}
}

func (r *LostPersonRepository) Create(ctx context.Context, person *domain.LostPerson) (*domain.LostPerson, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO lost_persons (id, report_id, person_description, image_url, embedding, age, last_seen_location, contact_info, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+lostPersonColumns,
		pgUUID(person.ID), pgUUID(person.ReportID), person.PersonDescription, person.ImageURL,
		person.Embedding, pgAge(person.Age), person.LastSeenLocation, person.ContactInfo,
		string(person.Status), pgTime(person.CreatedAt),
	)
	return scanLostPerson(row)
}

func (r *LostPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LostPerson, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+lostPersonColumns+` FROM lost_persons WHERE id = $1`, pgUUID(id))

	person, err := scanLostPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLostPersonNotFound
		}
		return nil, err
	}
	return person, nil
}

func (r *LostPersonRepository) ListMissing(ctx context.Context) ([]*domain.LostPerson, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx,
		`SELECT `+lostPersonColumns+` FROM lost_persons WHERE status = 'missing' ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	persons := make([]*domain.LostPerson, 0)
	for rows.Next() {
		person, err := scanLostPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, person)
	}
	return persons, rows.Err()
}
