package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

var _ ports.MessageRepository = (*MessageRepository)(nil)

func NewMessageRepository(pool *pgxpool.Pool) ports.MessageRepository {
	return &MessageRepository{pool: pool}
}

const messageColumns = `id, sender_id, recipient_id, body, read_at, created_at`

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var (
		message           domain.Message
		id, sender, recip pgtype.UUID
		readAt, createdAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &sender, &recip, &message.Body, &readAt, &createdAt)
	if err != nil {
		return nil, err
	}
	message.ID = uuidFromPg(id)
	message.SenderID = uuidFromPg(sender)
	message.RecipientID = uuidFromPg(recip)
	message.ReadAt = timePtrFromPg(readAt)
	message.CreatedAt = timeFromPg(createdAt)
	return &message, nil
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO messages (id, sender_id, recipient_id, body, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+messageColumns,
		pgUUID(message.ID), pgUUID(message.SenderID), pgUUID(message.RecipientID),
		message.Body, pgTimePtr(message.ReadAt), pgTime(message.CreatedAt),
	)
	return scanMessage(row)
}

func (r *MessageRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Message, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE sender_id = $1 OR recipient_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, pgUUID(userID), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0, limit)
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
