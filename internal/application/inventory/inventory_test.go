package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/application/settings"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
)

func setup(t *testing.T) (*inventory.ProductUseCase, *inventory.CategoryUseCase, *settings.UseCase) {
	t.Helper()
	st, err := storage.Open(context.Background(), storage.NewMemoryKV(), nil)
	require.NoError(t, err)
	cfg := settings.NewUseCase(st.Settings)
	return inventory.NewProductUseCase(st.Products, st.Categories, cfg),
		inventory.NewCategoryUseCase(st.Categories, st.Products),
		cfg
}

func TestProduct_CreateYListado(t *testing.T) {
	ctx := context.Background()
	products, categories, _ := setup(t)

	cat, err := categories.Create(ctx, dto.CategoryRequest{Name: "Alimentation"})
	require.NoError(t, err)
	assert.Equal(t, inventory.DefaultColor, cat.Color)

	riz, err := products.Create(ctx, dto.CreateProductRequest{
		Name: "Riz parfumé", CategoryID: cat.ID, PurchasePrice: decimal.NewFromInt(500), Quantity: 20, MinStock: 5, Unit: "kg",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alimentation", riz.CategoryName)
	assert.Equal(t, "En stock", riz.StatusLabel)
	assert.True(t, riz.StockValue.Equal(decimal.NewFromInt(10000)))

	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Savon", Quantity: 0})
	require.NoError(t, err)

	all, err := products.List(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := products.List(ctx, dto.ProductFilter{Query: "RIZ"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, riz.ID, found[0].ID)

	byCat, err := products.List(ctx, dto.ProductFilter{CategoryID: cat.ID})
	require.NoError(t, err)
	assert.Len(t, byCat, 1)

	savon, err := products.List(ctx, dto.ProductFilter{Query: "savon"})
	require.NoError(t, err)
	require.Len(t, savon, 1)
	assert.Equal(t, inventory.NoCategory, savon[0].CategoryName)
	assert.Equal(t, inventory.DefaultUnit, savon[0].Unit)
	assert.Equal(t, "Rupture", savon[0].StatusLabel)
}

func TestProduct_Validaciones(t *testing.T) {
	ctx := context.Background()
	products, _, _ := setup(t)

	_, err := products.Create(ctx, dto.CreateProductRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "X", PurchasePrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "X", CategoryID: "fantasma"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = products.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_UpdateYAjuste(t *testing.T) {
	ctx := context.Background()
	products, _, _ := setup(t)
	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Huile", PurchasePrice: decimal.NewFromInt(1200), Quantity: 3, MinStock: 2})
	require.NoError(t, err)

	name := "Huile d'arachide"
	updated, err := products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, 3, updated.Quantity)

	adjusted, err := products.AdjustStock(ctx, p.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, 1, adjusted.Quantity)
	assert.Equal(t, "Stock faible", adjusted.StatusLabel)

	_, err = products.AdjustStock(ctx, p.ID, -5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestProduct_DeletePideContrasena(t *testing.T) {
	ctx := context.Background()
	products, _, cfg := setup(t)
	require.NoError(t, cfg.SetDeletePassword(ctx, dto.DeletePasswordRequest{New: "secret"}))
	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Sucre"})
	require.NoError(t, err)

	assert.ErrorIs(t, products.Delete(ctx, p.ID, "mal"), domain.ErrInvalidDeletePassword)
	require.NoError(t, products.Delete(ctx, p.ID, "secret"))
	_, err = products.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategory_NombreUnicoYEnUso(t *testing.T) {
	ctx := context.Background()
	products, categories, _ := setup(t)

	boissons, err := categories.Create(ctx, dto.CategoryRequest{Name: "Boissons", Color: "#22c55e"})
	require.NoError(t, err)
	_, err = categories.Create(ctx, dto.CategoryRequest{Name: "boissons"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Bissap", CategoryID: boissons.ID})
	require.NoError(t, err)
	assert.ErrorIs(t, categories.Delete(ctx, boissons.ID), domain.ErrCategoryInUse)

	list, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ProductCount)

	vide, err := categories.Create(ctx, dto.CategoryRequest{Name: "Vide"})
	require.NoError(t, err)
	require.NoError(t, categories.Delete(ctx, vide.ID))
}
