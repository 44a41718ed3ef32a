package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/application/notification"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/application/settings"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
)

type silentNotifier struct{}

func (silentNotifier) Add(context.Context, notification.Input) (*entity.Notification, error) {
	return &entity.Notification{}, nil
}

// saleBeforeWrite registra una venta justo antes de la escritura del producto, como una
// caja que vende mientras el administrador edita la ficha.
type saleBeforeWrite struct {
	repository.ProductRepository
	sell func()
}

func (r *saleBeforeWrite) UpdateFunc(ctx context.Context, id string, fn func(*entity.Product) error) (*entity.Product, error) {
	if sell := r.sell; sell != nil {
		r.sell = nil
		sell()
	}
	return r.ProductRepository.UpdateFunc(ctx, id, fn)
}

type shop struct {
	repo       *saleBeforeWrite
	products   *inventory.ProductUseCase
	categories *inventory.CategoryUseCase
	sales      *sales.Service
}

func newShop(t *testing.T) *shop {
	t.Helper()
	st, err := storage.Open(context.Background(), storage.NewMemoryKV(), nil)
	require.NoError(t, err)
	cfg := settings.NewUseCase(st.Settings)
	repo := &saleBeforeWrite{ProductRepository: st.Products}
	return &shop{
		repo:       repo,
		products:   inventory.NewProductUseCase(repo, st.Categories, cfg),
		categories: inventory.NewCategoryUseCase(st.Categories, st.Products),
		sales:      sales.NewService(st.Tx, st.Products, st.Sales, st.Settings, silentNotifier{}, cfg, nil),
	}
}

func (s *shop) sellBeforeWrite(t *testing.T, productID string, qty int) {
	s.repo.sell = func() {
		_, err := s.sales.Create(context.Background(), "u1", "Awa", dto.CreateSaleRequest{
			ProductID: productID, Quantity: qty, UnitPrice: decimal.NewFromInt(150),
		})
		require.NoError(t, err)
	}
}

func TestProduct_UpdateNoPisaUnaVentaIntermedia(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	p, err := s.products.Create(ctx, dto.CreateProductRequest{Name: "Huile", PurchasePrice: decimal.NewFromInt(100), Quantity: 10})
	require.NoError(t, err)

	s.sellBeforeWrite(t, p.ID, 3)
	name := "Huile de palme"
	updated, err := s.products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, 7, updated.Quantity)

	got, err := s.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
}

func TestProduct_AjusteVeLaVentaIntermedia(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	p, err := s.products.Create(ctx, dto.CreateProductRequest{Name: "Riz", PurchasePrice: decimal.NewFromInt(100), Quantity: 10})
	require.NoError(t, err)

	s.sellBeforeWrite(t, p.ID, 8)
	_, err = s.products.AdjustStock(ctx, p.ID, -5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := s.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
}

func TestProduct_AjustesYVentasConcurrentesNoDejanStockNegativo(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	p, err := s.products.Create(ctx, dto.CreateProductRequest{Name: "Sucre", PurchasePrice: decimal.NewFromInt(100), Quantity: 10})
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	count := func(err error) {
		if err == nil {
			mu.Lock()
			ok++
			mu.Unlock()
		}
	}
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.sales.Create(ctx, "u1", "Awa", dto.CreateSaleRequest{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(150)})
			count(err)
		}()
		go func() {
			defer wg.Done()
			_, err := s.products.AdjustStock(ctx, p.ID, -1)
			count(err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	got, err := s.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestCategory_BorradoYAsignacionConcurrentes(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		s := newShop(t)
		cat, err := s.categories.Create(ctx, dto.CategoryRequest{Name: "Épices"})
		require.NoError(t, err)
		p, err := s.products.Create(ctx, dto.CreateProductRequest{Name: "Poivre"})
		require.NoError(t, err)

		var (
			wg                   sync.WaitGroup
			deleteErr, updateErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			deleteErr = s.categories.Delete(ctx, cat.ID)
		}()
		go func() {
			defer wg.Done()
			_, updateErr = s.products.Update(ctx, p.ID, dto.UpdateProductRequest{CategoryID: &cat.ID})
		}()
		wg.Wait()

		if deleteErr == nil {
			assert.ErrorIs(t, updateErr, domain.ErrInvalidInput, "la categoría ya no existe")
		} else {
			assert.True(t, errors.Is(deleteErr, domain.ErrCategoryInUse), "error inesperado: %v", deleteErr)
			assert.NoError(t, updateErr)
		}
	}
}
