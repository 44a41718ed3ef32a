package finance_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/finance"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
)

func newUseCase(t *testing.T) *finance.UseCase {
	t.Helper()
	st, err := storage.Open(context.Background(), storage.NewMemoryKV(), nil)
	require.NoError(t, err)
	return finance.NewUseCase(st.Finances)
}

func entry(kind, category string, amount int64, desc string) dto.FinancialEntryRequest {
	return dto.FinancialEntryRequest{Type: kind, Category: category, Amount: decimal.NewFromInt(amount), Description: desc}
}

func TestList_TotalesYOrden(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	_, err := uc.Create(ctx, entry("income", "Ventes", 50000, "Caisse du jour"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, entry("expense", "Loyer", 30000, "Loyer mai"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, entry("expense", "Électricité", 5000, "Facture SENELEC"))
	require.NoError(t, err)

	list, err := uc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.Equal(t, "Facture SENELEC", list.Items[0].Description, "el más reciente primero")
	assert.True(t, list.TotalIncome.Equal(decimal.NewFromInt(50000)))
	assert.True(t, list.TotalExpenses.Equal(decimal.NewFromInt(35000)))
	assert.True(t, list.Balance.Equal(decimal.NewFromInt(15000)))

	expenses, err := uc.List(ctx, "expense", "loyer")
	require.NoError(t, err)
	assert.Len(t, expenses.Items, 1)
}

func TestCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	cases := []dto.FinancialEntryRequest{
		entry("autre", "Ventes", 10, "x"),
		entry("income", "", 10, "x"),
		entry("income", "Loyer", 10, "x"),
		entry("income", "Ventes", 0, "x"),
		entry("expense", "Loyer", 10, "  "),
	}
	for _, in := range cases {
		_, err := uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestUpdateYDelete(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	created, err := uc.Create(ctx, entry("expense", "Marketing", 8000, "Affiches"))
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, entry("expense", "Marketing", 9000, "Affiches A3"))
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(9000)))
	assert.Equal(t, created.Date, updated.Date)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
	_, err = uc.Update(ctx, created.ID, entry("expense", "Marketing", 1, "x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategories(t *testing.T) {
	cats := newUseCase(t).Categories()
	assert.Contains(t, cats.Income, "Ventes")
	assert.Contains(t, cats.Expense, "Achats stock")
}
