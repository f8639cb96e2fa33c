package service

import (
	"context"
	"time"

	"github.com/morphofolio/backend/internal/model"
)

// ---------------------------------------------------------------------------
// mockMessageRepository is an in-memory stub for testing.
// ---------------------------------------------------------------------------

type mockMessageRepository struct {
	insertFunc       func(ctx context.Context, msg *model.Message) error
	listFunc         func(ctx context.Context) ([]model.Message, error)
	updateStatusFunc func(ctx context.Context, id string, status model.MessageStatus) (model.Message, error)
}

func (m *mockMessageRepository) Insert(ctx context.Context, msg *model.Message) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) List(ctx context.Context) ([]model.Message, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockMessageRepository) UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return storedRow(id, status, time.Now()), nil
}

// storedRow returns the repository's copy of one of storedMessages with
// status and updatedAt applied.
func storedRow(id string, status model.MessageStatus, updatedAt time.Time) model.Message {
	for _, m := range storedMessages() {
		if m.ID == id {
			m.Status = status
			m.UpdatedAt = updatedAt
			return m
		}
	}
	return model.Message{ID: id, Status: status, UpdatedAt: updatedAt}
}

type mockSnapshotCache struct {
	saved    []model.Message
	saves    int
	loadFunc func(ctx context.Context) ([]model.Message, error)
	saveErr  error
}

func (m *mockSnapshotCache) Save(ctx context.Context, messages []model.Message) error {
	m.saves++
	m.saved = messages
	return m.saveErr
}

func (m *mockSnapshotCache) Load(ctx context.Context) ([]model.Message, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return m.saved, nil
}
