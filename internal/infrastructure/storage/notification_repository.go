package storage

import (
	"context"
	"slices"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo Notification Sink (app_notifications), la más reciente primero.
type NotificationRepo struct {
	docs docs[entity.Notification]
}

func (r *NotificationRepo) List(_ context.Context) ([]*entity.Notification, error) {
	var out []*entity.Notification
	r.docs.read(func(items []entity.Notification) {
		out = make([]*entity.Notification, 0, len(items))
		for i := range items {
			n := items[i]
			out = append(out, &n)
		}
	})
	return out, nil
}

func (r *NotificationRepo) Prepend(ctx context.Context, n *entity.Notification) error {
	return r.docs.write(ctx, func(items []entity.Notification) ([]entity.Notification, error) {
		return append([]entity.Notification{*n}, items...), nil
	})
}

func (r *NotificationRepo) MarkAsRead(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.docs.write(ctx, func(items []entity.Notification) ([]entity.Notification, error) {
		i := slices.IndexFunc(items, func(n entity.Notification) bool { return n.ID == id })
		if i < 0 {
			return nil, errSkip
		}
		found = true
		if items[i].Read {
			return nil, errSkip
		}
		items[i].Read = true
		return items, nil
	})
	return found, err
}

func (r *NotificationRepo) MarkAllAsRead(ctx context.Context) error {
	return r.docs.write(ctx, func(items []entity.Notification) ([]entity.Notification, error) {
		for i := range items {
			items[i].Read = true
		}
		return items, nil
	})
}

func (r *NotificationRepo) Clear(ctx context.Context) error {
	return r.docs.write(ctx, func(_ []entity.Notification) ([]entity.Notification, error) {
		return []entity.Notification{}, nil
	})
}
