package notification

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=notification
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	Get(ctx context.Context, id uuid.UUID) (*Notification, error)
	List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]*Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, n *Notification) error {
	return s.repo.Create(ctx, n)
}

func (s *Service) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]*Notification, error) {
	return s.repo.List(ctx, recipientID, unreadOnly)
}

// MarkRead flags one notification as read. Only the recipient may do so.
func (s *Service) MarkRead(ctx context.Context, recipientID, id uuid.UUID) error {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if n.RecipientID != recipientID {
		return ErrNotFound
	}

	return s.repo.MarkRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}
