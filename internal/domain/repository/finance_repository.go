package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// FinanceRepository define el puerto del libro financiero (más reciente primero).
type FinanceRepository interface {
	List(ctx context.Context) ([]*entity.FinancialEntry, error)
	GetByID(ctx context.Context, id string) (*entity.FinancialEntry, error)
	Prepend(ctx context.Context, entry *entity.FinancialEntry) error
	Update(ctx context.Context, entry *entity.FinancialEntry) error
	Delete(ctx context.Context, id string) error
}
