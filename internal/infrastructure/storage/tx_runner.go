package storage

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks que modifican productos y ventas a la vez.
// Ambas colecciones se escriben en un solo PutMany: o se guardan las dos o ninguna.
type TxRunner struct {
	kv       KV
	products *collection[entity.Product]
	sales    *collection[entity.Sale]
	now      func() time.Time
}

// newTxRunner construye el runner. Las dos colecciones deben compartir el mismo KV.
func newTxRunner(kv KV, products *collection[entity.Product], sales *collection[entity.Sale], now func() time.Time) *TxRunner {
	return &TxRunner{kv: kv, products: products, sales: sales, now: now}
}

// Run ejecuta fn con repos atados a copias de trabajo. Si fn falla o el guardado falla,
// el estado visible no cambia.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	sales repository.SaleRepository,
) error) error {
	// Orden fijo de bloqueo: productos y luego ventas.
	r.products.mu.Lock()
	defer r.products.mu.Unlock()
	r.sales.mu.Lock()
	defer r.sales.mu.Unlock()

	stagedProducts := &staged[entity.Product]{items: slices.Clone(r.products.items)}
	stagedSales := &staged[entity.Sale]{items: slices.Clone(r.sales.items)}

	if err := fn(
		&ProductRepo{docs: stagedProducts, now: r.now},
		&SaleRepo{docs: stagedSales},
	); err != nil {
		return err
	}
	if !stagedProducts.dirty && !stagedSales.dirty {
		return nil
	}

	entries := make(map[string][]byte, 2)
	if stagedProducts.dirty {
		raw, err := encodeList(stagedProducts.items)
		if err != nil {
			return fmt.Errorf("codificar %s: %w", r.products.key, err)
		}
		entries[r.products.key] = raw
	}
	if stagedSales.dirty {
		raw, err := encodeList(stagedSales.items)
		if err != nil {
			return fmt.Errorf("codificar %s: %w", r.sales.key, err)
		}
		entries[r.sales.key] = raw
	}
	if err := r.kv.PutMany(ctx, entries); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	if stagedProducts.dirty {
		r.products.items = stagedProducts.items
	}
	if stagedSales.dirty {
		r.sales.items = stagedSales.items
	}
	return nil
}
