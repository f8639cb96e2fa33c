package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/morphofolio/backend/internal/model"
)

// PgMessageRepository is the PostgreSQL implementation of MessageRepository.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPgMessageRepository creates a PgMessageRepository backed by the given pool.
func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// Ensure PgMessageRepository implements MessageRepository at compile time.
var _ MessageRepository = (*PgMessageRepository)(nil)

// Ping checks the connection pool.
func (r *PgMessageRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Insert adds a messages row and populates msg.ID and timestamps from the
// RETURNING clause.
func (r *PgMessageRepository) Insert(ctx context.Context, msg *model.Message) error {
	status := msg.Status
	if status == "" {
		status = model.StatusUnread
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (name, email, subject, message, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		msg.Name, msg.Email, msg.Subject, msg.Message, string(status),
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	msg.Status = status
	return nil
}

// List returns all messages ordered by created_at descending.
func (r *PgMessageRepository) List(ctx context.Context) ([]model.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+pgMessageColumns+`
		 FROM messages
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		m, err := scanPgMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// UpdateStatus changes only the status column of one row and returns the row.
func (r *PgMessageRepository) UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE messages SET status = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+pgMessageColumns,
		id, string(status),
	)
	m, err := scanPgMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Message{}, ErrNotFound
	}
	if err != nil {
		return model.Message{}, fmt.Errorf("update message status: %w", err)
	}
	return m, nil
}

const pgMessageColumns = `id, name, email, subject, message, status, created_at, updated_at`

func scanPgMessage(row pgx.Row) (model.Message, error) {
	var m model.Message
	var status string
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return model.Message{}, fmt.Errorf("scan message: %w", err)
	}
	var err error
	if m.Status, err = model.ParseStatus(status); err != nil {
		return model.Message{}, fmt.Errorf("message %s: %w", m.ID, err)
	}
	return m, nil
}
