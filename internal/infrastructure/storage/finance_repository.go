package storage

import (
	"context"
	"slices"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.FinanceRepository = (*FinanceRepo)(nil)

// FinanceRepo libro de ingresos y gastos (app_finances).
type FinanceRepo struct {
	docs docs[entity.FinancialEntry]
}

func (r *FinanceRepo) List(_ context.Context) ([]*entity.FinancialEntry, error) {
	var out []*entity.FinancialEntry
	r.docs.read(func(items []entity.FinancialEntry) {
		out = make([]*entity.FinancialEntry, 0, len(items))
		for i := range items {
			e := items[i]
			out = append(out, &e)
		}
	})
	return out, nil
}

func (r *FinanceRepo) GetByID(_ context.Context, id string) (*entity.FinancialEntry, error) {
	var out *entity.FinancialEntry
	r.docs.read(func(items []entity.FinancialEntry) {
		if i := indexOfEntry(items, id); i >= 0 {
			e := items[i]
			out = &e
		}
	})
	return out, nil
}

func (r *FinanceRepo) Prepend(ctx context.Context, entry *entity.FinancialEntry) error {
	return r.docs.write(ctx, func(items []entity.FinancialEntry) ([]entity.FinancialEntry, error) {
		return append([]entity.FinancialEntry{*entry}, items...), nil
	})
}

func (r *FinanceRepo) Update(ctx context.Context, entry *entity.FinancialEntry) error {
	return r.docs.write(ctx, func(items []entity.FinancialEntry) ([]entity.FinancialEntry, error) {
		i := indexOfEntry(items, entry.ID)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		items[i] = *entry
		return items, nil
	})
}

func (r *FinanceRepo) Delete(ctx context.Context, id string) error {
	return r.docs.write(ctx, func(items []entity.FinancialEntry) ([]entity.FinancialEntry, error) {
		i := indexOfEntry(items, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
}

func indexOfEntry(items []entity.FinancialEntry, id string) int {
	return slices.IndexFunc(items, func(e entity.FinancialEntry) bool { return e.ID == id })
}
