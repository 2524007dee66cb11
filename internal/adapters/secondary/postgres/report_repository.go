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

type ReportRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ReportRepository = (*ReportRepository)(nil)

func NewReportRepository(pool *pgxpool.Pool) ports.ReportRepository {
	return &ReportRepository{pool: pool}
}

const reportColumns = `id, user_id, type, lat, lng, text_body, media_url, transcript, status, severity, created_at`

func scanReport(row pgx.Row) (*domain.Report, error) {
	var (
		report     domain.Report
		id, userID pgtype.UUID
		reportType string
		lat, lng   pgtype.Float8
		status     string
		severity   string
		createdAt  pgtype.Timestamptz
	)
	err := row.Scan(&id, &userID, &reportType, &lat, &lng, &report.Text, &report.MediaURL,
		&report.Transcript, &status, &severity, &createdAt)
	if err != nil {
		return nil, err
	}
	report.ID = uuidFromPg(id)
	report.UserID = uuidPtrFromPg(userID)
	report.Type = domain.ReportType(reportType)
	report.Lat = floatPtrFromPg(lat)
	report.Lng = floatPtrFromPg(lng)
	report.Status = domain.ReportStatus(status)
	report.Severity = domain.RiskLevel(severity)
	report.CreatedAt = timeFromPg(createdAt)
	return &report, nil
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO reports (id, user_id, type, lat, lng, text_body, media_url, transcript, status, severity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+reportColumns,
		pgUUID(report.ID), pgUUIDPtr(report.UserID), string(report.Type),
		pgFloatPtr(report.Lat), pgFloatPtr(report.Lng), report.Text, report.MediaURL,
		report.Transcript, string(report.Status), string(report.Severity), pgTime(report.CreatedAt),
	)
	return scanReport(row)
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE id = $1`, pgUUID(id))

	report, err := scanReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

func (r *ReportRepository) ListRecent(ctx context.Context, limit, offset int) ([]*domain.Report, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx,
		`SELECT `+reportColumns+` FROM reports ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]*domain.Report, 0, limit)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
