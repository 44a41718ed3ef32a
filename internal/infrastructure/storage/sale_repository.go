package storage

import (
	"context"
	"slices"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo libro de ventas (app_sales), la más reciente primero.
type SaleRepo struct {
	docs docs[entity.Sale]
}

func (r *SaleRepo) List(_ context.Context) ([]*entity.Sale, error) {
	var out []*entity.Sale
	r.docs.read(func(items []entity.Sale) {
		out = make([]*entity.Sale, 0, len(items))
		for i := range items {
			s := items[i]
			out = append(out, &s)
		}
	})
	return out, nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.docs.read(func(items []entity.Sale) {
		if i := indexOfSale(items, id); i >= 0 {
			s := items[i]
			out = &s
		}
	})
	return out, nil
}

func (r *SaleRepo) Prepend(ctx context.Context, sale *entity.Sale) error {
	return r.docs.write(ctx, func(items []entity.Sale) ([]entity.Sale, error) {
		if indexOfSale(items, sale.ID) >= 0 {
			return nil, domain.ErrDuplicate
		}
		return append([]entity.Sale{*sale}, items...), nil
	})
}

func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	return r.docs.write(ctx, func(items []entity.Sale) ([]entity.Sale, error) {
		i := indexOfSale(items, sale.ID)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		items[i] = *sale
		return items, nil
	})
}

func (r *SaleRepo) DeleteCancelled(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := r.docs.write(ctx, func(items []entity.Sale) ([]entity.Sale, error) {
		i := indexOfSale(items, id)
		if i < 0 || !items[i].IsCancelled() {
			return nil, errSkip
		}
		deleted = true
		return slices.Delete(items, i, i+1), nil
	})
	return deleted, err
}

func (r *SaleRepo) DeleteAllCancelled(ctx context.Context) (int, error) {
	removed := 0
	err := r.docs.write(ctx, func(items []entity.Sale) ([]entity.Sale, error) {
		kept := items[:0]
		for _, s := range items {
			if s.IsCancelled() {
				removed++
				continue
			}
			kept = append(kept, s)
		}
		if removed == 0 {
			return nil, errSkip
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func indexOfSale(items []entity.Sale, id string) int {
	return slices.IndexFunc(items, func(s entity.Sale) bool { return s.ID == id })
}
