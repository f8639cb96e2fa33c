package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/morphofolio/backend/internal/model"
)

// sqliteTimeLayout is fixed width so that text ordering equals time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS messages (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    subject TEXT NOT NULL,
    message TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'unread'
        CHECK (status IN ('unread', 'read', 'replied')),
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages (created_at DESC);
`

// SQLiteMessageRepository is a MessageRepository backed by a local SQLite file.
type SQLiteMessageRepository struct {
	db  *sql.DB
	now func() time.Time
}

// Ensure SQLiteMessageRepository implements MessageRepository at compile time.
var _ MessageRepository = (*SQLiteMessageRepository)(nil)

// OpenSQLite opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteMessageRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteMessageRepository{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (r *SQLiteMessageRepository) Close() error {
	return r.db.Close()
}

// Ping checks the database handle.
func (r *SQLiteMessageRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Insert assigns an id and timestamps, then stores msg.
func (r *SQLiteMessageRepository) Insert(ctx context.Context, msg *model.Message) error {
	status := msg.Status
	if status == "" {
		status = model.StatusUnread
	}
	now := r.now().UTC()
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, name, email, subject, message, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, msg.Name, msg.Email, msg.Subject, msg.Message, string(status),
		now.Format(sqliteTimeLayout), now.Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	msg.ID = id
	msg.Status = status
	msg.CreatedAt = now
	msg.UpdatedAt = now
	return nil
}

// List returns all messages ordered by created_at descending.
func (r *SQLiteMessageRepository) List(ctx context.Context) ([]model.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sqliteMessageColumns+`
		 FROM messages
		 ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		m, err := scanSQLiteMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// UpdateStatus changes only the status column of one row and reads the row
// back in the same transaction.
func (r *SQLiteMessageRepository) UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Message{}, fmt.Errorf("update message status: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := r.now().UTC()
	res, err := tx.ExecContext(ctx,
		`UPDATE messages SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), now.Format(sqliteTimeLayout), id,
	)
	if err != nil {
		return model.Message{}, fmt.Errorf("update message status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Message{}, fmt.Errorf("update message status: %w", err)
	}
	if n == 0 {
		return model.Message{}, ErrNotFound
	}

	m, err := scanSQLiteMessage(tx.QueryRowContext(ctx,
		`SELECT `+sqliteMessageColumns+` FROM messages WHERE id = ?`, id))
	if err != nil {
		return model.Message{}, fmt.Errorf("update message status: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Message{}, fmt.Errorf("update message status: %w", err)
	}
	return m, nil
}

const sqliteMessageColumns = `id, name, email, subject, message, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteMessage(row rowScanner) (model.Message, error) {
	var m model.Message
	var status, createdAt, updatedAt string
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &status, &createdAt, &updatedAt); err != nil {
		return model.Message{}, fmt.Errorf("scan message: %w", err)
	}
	var err error
	if m.Status, err = model.ParseStatus(status); err != nil {
		return model.Message{}, fmt.Errorf("message %s: %w", m.ID, err)
	}
	if m.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
		return model.Message{}, fmt.Errorf("message %s created_at: %w", m.ID, err)
	}
	if m.UpdatedAt, err = time.Parse(sqliteTimeLayout, updatedAt); err != nil {
		return model.Message{}, fmt.Errorf("message %s updated_at: %w", m.ID, err)
	}
	return m, nil
}
