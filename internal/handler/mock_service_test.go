package handler

import (
	"context"

	"github.com/morphofolio/backend/internal/model"
)

type mockContactService struct {
	submitFunc func(ctx context.Context, in model.ContactSubmission) (*model.Message, error)
}

func (m *mockContactService) Submit(ctx context.Context, in model.ContactSubmission) (*model.Message, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, in)
	}
	return &model.Message{ID: "m-new", Status: model.StatusUnread}, nil
}

type mockMessageService struct {
	listFunc         func(ctx context.Context) ([]model.Message, error)
	updateStatusFunc func(ctx context.Context, id string, status model.MessageStatus) (model.Message, error)
}

func (m *mockMessageService) List(ctx context.Context) ([]model.Message, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockMessageService) UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return model.Message{ID: id, Status: status}, nil
}

// nopRepository accepts every write; used where the real services run.
type nopRepository struct{}

func (nopRepository) Insert(ctx context.Context, m *model.Message) error {
	m.ID = "m-nop"
	return nil
}

func (nopRepository) List(ctx context.Context) ([]model.Message, error) { return nil, nil }

func (nopRepository) UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (model.Message, error) {
	return model.Message{ID: id, Status: status}, nil
}
