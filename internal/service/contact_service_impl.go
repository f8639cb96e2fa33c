package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/morphofolio/backend/internal/model"
	"github.com/morphofolio/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.MessageRepository
	validate *validator.Validate
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.MessageRepository) ContactService {
	return &contactServiceImpl{repo: repo, validate: newValidator()}
}

// Submit trims and validates the submission, then inserts it with status "unread".
// ID and timestamps come from the repository.
func (s *contactServiceImpl) Submit(ctx context.Context, in model.ContactSubmission) (*model.Message, error) {
	in = in.Normalize()
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	msg := in.ToMessage()
	if err := s.repo.Insert(ctx, msg); err != nil {
		return nil, fmt.Errorf("submit contact message: %w", err)
	}
	return msg, nil
}
