package service

import (
	"context"

	"github.com/morphofolio/backend/internal/model"
)

// MessageService is the message store façade used by the admin views.
// *MessageStore implements it.
type MessageService interface {
	// List returns the latest message list. On failure it returns the
	// last-known list together with an error wrapping ErrFetchFailed.
	List(ctx context.Context) ([]model.Message, error)
	// UpdateStatus changes one message's status and returns the stored copy.
	// Failures wrap ErrUpdateFailed and leave the list untouched.
	UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (model.Message, error)
}

var _ MessageService = (*MessageStore)(nil)
