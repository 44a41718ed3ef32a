package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (Stock Store).
type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error) // nil, nil si no existe
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error // ErrNotFound si no existe
	// UpdateFunc lee, valida y reescribe el producto bajo el mismo bloqueo que las ventas.
	// Si fn devuelve error no se guarda nada. ErrNotFound si no existe.
	UpdateFunc(ctx context.Context, id string, fn func(product *entity.Product) error) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
	// AdjustStock suma delta (positivo o negativo) a la cantidad y actualiza UpdatedAt.
	// No limita a cero y un id desconocido no es error.
	AdjustStock(ctx context.Context, id string, delta int) error
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	// IfCategoryUnused ejecuta fn con los productos bloqueados, solo si ninguno usa la categoría.
	// ErrCategoryInUse en caso contrario.
	IfCategoryUnused(ctx context.Context, categoryID string, fn func() error) error
}
