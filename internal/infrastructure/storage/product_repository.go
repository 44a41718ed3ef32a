package storage

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo Stock Store sobre la colección app_products (viva o dentro de una transacción).
type ProductRepo struct {
	docs docs[entity.Product]
	now  func() time.Time
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.docs.read(func(items []entity.Product) {
		out = make([]*entity.Product, 0, len(items))
		for i := range items {
			p := items[i]
			out = append(out, &p)
		}
	})
	return out, nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.docs.read(func(items []entity.Product) {
		if i := indexOfProduct(items, id); i >= 0 {
			p := items[i]
			out = &p
		}
	})
	return out, nil
}

// Create agrega el producto al final de la colección.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.docs.write(ctx, func(items []entity.Product) ([]entity.Product, error) {
		if indexOfProduct(items, product.ID) >= 0 {
			return nil, domain.ErrDuplicate
		}
		return append(items, *product), nil
	})
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.docs.write(ctx, func(items []entity.Product) ([]entity.Product, error) {
		i := indexOfProduct(items, product.ID)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		items[i] = *product
		return items, nil
	})
}

// UpdateFunc aplica fn a una copia del producto dentro de la escritura de la colección.
func (r *ProductRepo) UpdateFunc(ctx context.Context, id string, fn func(product *entity.Product) error) (*entity.Product, error) {
	var out *entity.Product
	err := r.docs.write(ctx, func(items []entity.Product) ([]entity.Product, error) {
		i := indexOfProduct(items, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		p := items[i]
		if err := fn(&p); err != nil {
			return nil, err
		}
		items[i] = p
		out = &p
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.docs.write(ctx, func(items []entity.Product) ([]entity.Product, error) {
		i := indexOfProduct(items, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
}

// AdjustStock suma delta sin límite inferior. Un id desconocido deja la colección igual
// pero igualmente se reescribe.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) error {
	return r.docs.write(ctx, func(items []entity.Product) ([]entity.Product, error) {
		if i := indexOfProduct(items, id); i >= 0 {
			items[i].Quantity += delta
			items[i].UpdatedAt = r.now()
		}
		return items, nil
	})
}

func (r *ProductRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	n := 0
	r.docs.read(func(items []entity.Product) {
		for i := range items {
			if items[i].CategoryID == categoryID {
				n++
			}
		}
	})
	return n, nil
}

// IfCategoryUnused toma el bloqueo de escritura de productos sin modificarlos. Mientras fn corre
// ningún producto puede pasar a la categoría.
func (r *ProductRepo) IfCategoryUnused(ctx context.Context, categoryID string, fn func() error) error {
	return r.docs.write(ctx, func(items []entity.Product) ([]entity.Product, error) {
		if slices.ContainsFunc(items, func(p entity.Product) bool { return p.CategoryID == categoryID }) {
			return nil, domain.ErrCategoryInUse
		}
		if err := fn(); err != nil {
			return nil, err
		}
		return nil, errSkip
	})
}

func indexOfProduct(items []entity.Product, id string) int {
	return slices.IndexFunc(items, func(p entity.Product) bool { return p.ID == id })
}
