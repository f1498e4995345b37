package notification

import (
	"context"

	"propmatch/internal/common"
)

type Repository interface {
	Create(ctx context.Context, n Notification) (*Notification, error)
	ListByUser(ctx context.Context, userID common.UUID) ([]Notification, error)
	GetByID(ctx context.Context, id common.UUID) (*Notification, error)
	MarkRead(ctx context.Context, id common.UUID) error
	Delete(ctx context.Context, id common.UUID) error
}
