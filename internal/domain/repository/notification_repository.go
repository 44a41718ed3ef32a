package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// NotificationRepository define el puerto del Notification Sink.
type NotificationRepository interface {
	List(ctx context.Context) ([]*entity.Notification, error)
	Prepend(ctx context.Context, n *entity.Notification) error
	MarkAsRead(ctx context.Context, id string) (bool, error)
	MarkAllAsRead(ctx context.Context) error
	Clear(ctx context.Context) error
}
