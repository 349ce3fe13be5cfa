package notifications

import (
	"context"

	"gorent/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notifID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type UserLister interface {
	List(ctx context.Context) ([]domain.User, error)
}
