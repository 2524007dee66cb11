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

type NotificationRepository struct {
	pool *pgxpool.Pool
}

var _ ports.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(pool *pgxpool.Pool) ports.NotificationRepository {
	return &NotificationRepository{pool: pool}
}

const notificationColumns = `id, title, body, severity, created_by, acknowledged_by, acknowledged_at, created_at`

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var (
		notification       domain.Notification
		id, createdBy      pgtype.UUID
		ackedBy            pgtype.UUID
		severity           string
		ackedAt, createdAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &notification.Title, &notification.Body, &severity, &createdBy,
		&ackedBy, &ackedAt, &createdAt)
	if err != nil {
		return nil, err
	}
	notification.ID = uuidFromPg(id)
	notification.Severity = domain.RiskLevel(severity)
	notification.CreatedBy = uuidFromPg(createdBy)
	notification.AcknowledgedBy = uuidPtrFromPg(ackedBy)
	notification.AcknowledgedAt = timePtrFromPg(ackedAt)
	notification.CreatedAt = timeFromPg(createdAt)
	return &notification, nil
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO notifications (id, title, body, severity, created_by, acknowledged_by, acknowledged_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+notificationColumns,
		pgUUID(notification.ID), notification.Title, notification.Body, string(notification.Severity),
		pgUUID(notification.CreatedBy), pgUUIDPtr(notification.AcknowledgedBy),
		pgTimePtr(notification.AcknowledgedAt), pgTime(notification.CreatedAt),
	)
	return scanNotification(row)
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, pgUUID(id))

	notification, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, err
	}
	return notification, nil
}

func (r *NotificationRepository) Update(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		UPDATE notifications
		SET acknowledged_by = $2, acknowledged_at = $3
		WHERE id = $1
		RETURNING `+notificationColumns,
		pgUUID(notification.ID), pgUUIDPtr(notification.AcknowledgedBy), pgTimePtr(notification.AcknowledgedAt),
	)

	updated, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *NotificationRepository) ListRecent(ctx context.Context, limit, offset int) ([]*domain.Notification, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0, limit)
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}
