package notifications

import (
	"context"

	"github.com/google/uuid"
)

// Service interface defines the contract for the notification feed
type Service interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (*Notification, error)
}

type service struct {
	repo Repository
}

// NewService creates a new notification service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, id, userID uuid.UUID) (*Notification, error) {
	return s.repo.MarkRead(ctx, id, userID)
}
