package app

import (
	"context"

	"propmatch/internal/common"
	"propmatch/internal/domain/notification"
)

type NotificationService struct {
	repo notification.Repository
}

func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) ListOwn(ctx context.Context, actor Actor) ([]notification.Notification, error) {
	return s.repo.ListByUser(ctx, actor.UserID)
}

func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, id common.UUID) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != actor.UserID {
		return common.NewError(common.CodeForbidden, "notification belongs to another user", nil)
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) Delete(ctx context.Context, actor Actor, id common.UUID) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != actor.UserID {
		return common.NewError(common.CodeForbidden, "notification belongs to another user", nil)
	}
	return s.repo.Delete(ctx, id)
}
