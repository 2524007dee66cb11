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

type IncidentRepository struct {
	pool *pgxpool.Pool
}

var _ ports.IncidentRepository = (*IncidentRepository)(nil)

func NewIncidentRepository(pool *pgxpool.Pool) ports.IncidentRepository {
	return &IncidentRepository{pool: pool}
}

const incidentColumns = `id, kind, source_frame_id, related_report_id, severity, zone_id, summary,
	status, assigned_to, acknowledged_by, closed_by, closed_at, created_at, updated_at`

func scanIncident(row pgx.Row) (*domain.Incident, error) {
	var (
		incident                        domain.Incident
		id, sourceFrameID, reportID     pgtype.UUID
		assignedTo, ackedBy, closedBy   pgtype.UUID
		kind, severity, status          string
		closedAt, createdAt, updatedAt  pgtype.Timestamptz
	)
	err := row.Scan(&id, &kind, &sourceFrameID, &reportID, &severity, &incident.ZoneID,
		&incident.Summary, &status, &assignedTo, &ackedBy, &closedBy, &closedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	incident.ID = uuidFromPg(id)
	incident.Kind = domain.IncidentKind(kind)
	incident.SourceFrameID = uuidPtrFromPg(sourceFrameID)
	incident.RelatedReportID = uuidPtrFromPg(reportID)
	incident.Severity = domain.RiskLevel(severity)
	incident.Status = domain.IncidentStatus(status)
	incident.AssignedTo = uuidPtrFromPg(assignedTo)
	incident.AcknowledgedBy = uuidPtrFromPg(ackedBy)
	incident.ClosedBy = uuidPtrFromPg(closedBy)
	incident.ClosedAt = timePtrFromPg(closedAt)
	incident.CreatedAt = timeFromPg(createdAt)
	incident.UpdatedAt = timePtrFromPg(updatedAt)
	return &incident, nil
}

func (r *IncidentRepository) Create(ctx context.Context, incident *domain.Incident) (*domain.Incident, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO incidents (id, kind, source_frame_id, related_report_id, severity, zone_id, summary,
			status, assigned_to, acknowledged_by, closed_by, closed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+incidentColumns,
		pgUUID(incident.ID), string(incident.Kind), pgUUIDPtr(incident.SourceFrameID),
		pgUUIDPtr(incident.RelatedReportID), string(incident.Severity), incident.ZoneID,
		incident.Summary, string(incident.Status), pgUUIDPtr(incident.AssignedTo),
		pgUUIDPtr(incident.AcknowledgedBy), pgUUIDPtr(incident.ClosedBy),
		pgTimePtr(incident.ClosedAt), pgTime(incident.CreatedAt), pgTimePtr(incident.UpdatedAt),
	)
	return scanIncident(row)
}

func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+incidentColumns+` FROM incidents WHERE id = $1`, pgUUID(id))

	incident, err := scanIncident(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIncidentNotFound
		}
		return nil, err
	}
	return incident, nil
}

func (r *IncidentRepository) Update(ctx context.Context, incident *domain.Incident) (*domain.Incident, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		UPDATE incidents
		SET severity = $2, zone_id = $3, summary = $4, status = $5, assigned_to = $6,
			acknowledged_by = $7, closed_by = $8, closed_at = $9, updated_at = $10
		WHERE id = $1
		RETURNING `+incidentColumns,
		pgUUID(incident.ID), string(incident.Severity), incident.ZoneID, incident.Summary,
		string(incident.Status), pgUUIDPtr(incident.AssignedTo), pgUUIDPtr(incident.AcknowledgedBy),
		pgUUIDPtr(incident.ClosedBy), pgTimePtr(incident.ClosedAt), pgTimePtr(incident.UpdatedAt),
	)

	updated, err := scanIncident(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIncidentNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *IncidentRepository) ListRecent(ctx context.Context, limit, offset int) ([]*domain.Incident, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx,
		`SELECT `+incidentColumns+` FROM incidents ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incidents := make([]*domain.Incident, 0, limit)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		incidents = append(incidents, incident)
	}
	return incidents, rows.Err()
}
