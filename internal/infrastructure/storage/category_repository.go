package storage

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías de productos (app_categories).
type CategoryRepo struct {
	docs docs[entity.Category]
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	r.docs.read(func(items []entity.Category) {
		out = make([]*entity.Category, 0, len(items))
		for i := range items {
			c := items[i]
			out = append(out, &c)
		}
	})
	return out, nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	return r.find(func(c entity.Category) bool { return c.ID == id }), nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	return r.find(func(c entity.Category) bool { return strings.EqualFold(c.Name, name) }), nil
}

func (r *CategoryRepo) find(match func(entity.Category) bool) *entity.Category {
	var out *entity.Category
	r.docs.read(func(items []entity.Category) {
		if i := slices.IndexFunc(items, match); i >= 0 {
			c := items[i]
			out = &c
		}
	})
	return out
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	return r.docs.write(ctx, func(items []entity.Category) ([]entity.Category, error) {
		return append(items, *category), nil
	})
}

func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	return r.docs.write(ctx, func(items []entity.Category) ([]entity.Category, error) {
		i := slices.IndexFunc(items, func(c entity.Category) bool { return c.ID == category.ID })
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		items[i] = *category
		return items, nil
	})
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.docs.write(ctx, func(items []entity.Category) ([]entity.Category, error) {
		i := slices.IndexFunc(items, func(c entity.Category) bool { return c.ID == id })
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
}
