package repository

import (
	"context"

	"github.com/morphofolio/backend/internal/model"
)

// DB checks that the database connection is alive.
type DB interface {
	Ping(ctx context.Context) error
}

// MessageRepository is the persistence collaborator for contact messages.
// It offers exactly insert, ordered select and update-by-id.
type MessageRepository interface {
	// Insert stores msg and fills in its ID and timestamps.
	Insert(ctx context.Context, msg *model.Message) error
	// List returns every message, newest first.
	List(ctx context.Context) ([]model.Message, error)
	// UpdateStatus sets the status of one message and returns the stored row.
	// It returns ErrNotFound when no message has the given id.
	UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (model.Message, error)
}

// SnapshotCache keeps the last successfully loaded message list.
type SnapshotCache interface {
	Save(ctx context.Context, messages []model.Message) error
	// Load returns ErrNotFound when no snapshot is stored.
	Load(ctx context.Context) ([]model.Message, error)
}
