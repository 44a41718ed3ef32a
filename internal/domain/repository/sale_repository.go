package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// SaleRepository define el puerto del libro de ventas. El orden es siempre el de inserción,
// la más reciente primero.
type SaleRepository interface {
	List(ctx context.Context) ([]*entity.Sale, error)
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Prepend(ctx context.Context, sale *entity.Sale) error
	Update(ctx context.Context, sale *entity.Sale) error
	// DeleteCancelled elimina la venta si está anulada; devuelve false si no existe o no está anulada.
	DeleteCancelled(ctx context.Context, id string) (bool, error)
	// DeleteAllCancelled elimina todas las ventas anuladas y devuelve cuántas eran.
	DeleteAllCancelled(ctx context.Context) (int, error)
}
