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

type HelpRequestRepository struct {
	pool *pgxpool.Pool
}

var _ ports.HelpRequestRepository = (*HelpRequestRepository)(nil)

func NewHelpRequestRepository(pool *pgxpool.Pool) ports.HelpRequestRepository {
	return &HelpRequestRepository{pool: pool}
}

const helpRequestColumns = `id, user_id, request_type, description, location, lat, lng, status, assigned_to, created_at, updated_at`

func scanHelpRequest(row pgx.Row) (*domain.HelpRequest, error) {
	var (
		request              domain.HelpRequest
		id, userID           pgtype.UUID
		assignedTo           pgtype.UUID
		requestType, status  string
		lat, lng             pgtype.Float8
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &userID, &requestType, &request.Description, &request.Location,
		&lat, &lng, &status, &assignedTo, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	request.ID = uuidFromPg(id)
	request.UserID = uuidFromPg(userID)
	request.RequestType = domain.HelpRequestType(requestType)
	request.Lat = floatPtrFromPg(lat)
	request.Lng = floatPtrFromPg(lng)
	request.Status = domain.HelpRequestStatus(status)
	request.AssignedTo = uuidPtrFromPg(assignedTo)
	request.CreatedAt = timeFromPg(createdAt)
	request.UpdatedAt = timePtrFromPg(updatedAt)
	return &request, nil
}

func (r *HelpRequestRepository) Create(ctx context.Context, request *domain.HelpRequest) (*domain.HelpRequest, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO help_requests (id, user_id, request_type, description, location, lat, lng, status, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+helpRequestColumns,
		pgUUID(request.ID), pgUUID(request.UserID), string(request.RequestType), request.Description,
		request.Location, pgFloatPtr(request.Lat), pgFloatPtr(request.Lng), string(request.Status),
		pgUUIDPtr(request.AssignedTo), pgTime(request.CreatedAt), pgTimePtr(request.UpdatedAt),
	)
	return scanHelpRequest(row)
}

func (r *HelpRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.HelpRequest, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+helpRequestColumns+` FROM help_requests WHERE id = $1`, pgUUID(id))

	request, err := scanHelpRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHelpRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (r *HelpRequestRepository) Update(ctx context.Context, request *domain.HelpRequest) (*domain.HelpRequest, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		UPDATE help_requests
		SET status = $2, assigned_to = $3, updated_at = $4
		WHERE id = $1
		RETURNING `+helpRequestColumns,
		pgUUID(request.ID), string(request.Status), pgUUIDPtr(request.AssignedTo), pgTimePtr(request.UpdatedAt),
	)

	updated, err := scanHelpRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHelpRequestNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *HelpRequestRepository) ListOpen(ctx context.Context) ([]*domain.HelpRequest, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx,
		`SELECT `+helpRequestColumns+` FROM help_requests
		 WHERE status IN ('pending', 'in_progress')
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.HelpRequest, 0)
	for rows.Next() {
		request, err := scanHelpRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}
