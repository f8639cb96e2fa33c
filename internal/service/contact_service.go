package service

import (
	"context"

	"github.com/morphofolio/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates in and stores it as a new unread message.
	// A rejected submission returns a *ValidationError and stores nothing.
	Submit(ctx context.Context, in model.ContactSubmission) (*model.Message, error)
}
