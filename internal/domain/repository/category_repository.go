package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error) // sin distinguir mayúsculas
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}
