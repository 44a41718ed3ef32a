package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/notification"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/application/settings"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

var fixedNow = time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

type failingKV struct {
	*storage.MemoryKV
	fail bool
}

func (f *failingKV) PutMany(ctx context.Context, entries map[string][]byte) error {
	if f.fail {
		return errors.New("conexión perdida")
	}
	return f.MemoryKV.PutMany(ctx, entries)
}

type brokenNotifier struct{}

func (brokenNotifier) Add(context.Context, notification.Input) (*entity.Notification, error) {
	return nil, errors.New("sin espacio")
}

type fixture struct {
	st       *storage.Stores
	svc      *sales.Service
	notifs   *notification.UseCase
	settings *settings.UseCase
}

func newFixture(t *testing.T, kv storage.KV) *fixture {
	t.Helper()
	clock := func() time.Time { return fixedNow }
	st, err := storage.Open(context.Background(), kv, nil, storage.WithClock(clock))
	require.NoError(t, err)
	notifs := notification.NewUseCase(st.Notifications).WithClock(clock)
	cfg := settings.NewUseCase(st.Settings)
	svc := sales.NewService(st.Tx, st.Products, st.Sales, st.Settings, notifs, cfg, logger.Nop()).WithClock(clock)
	return &fixture{st: st, svc: svc, notifs: notifs, settings: cfg}
}

func (f *fixture) addProduct(t *testing.T, id string, purchase int64, qty, minStock int) {
	t.Helper()
	require.NoError(t, f.st.Products.Create(context.Background(), &entity.Product{
		ID: id, Name: "Savon", CategoryID: "c1", PurchasePrice: decimal.NewFromInt(purchase),
		Quantity: qty, MinStock: minStock, Unit: "pièce", CreatedAt: fixedNow, UpdatedAt: fixedNow,
	}))
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.st.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func sale(productID string, qty int, price int64) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{ProductID: productID, Quantity: qty, UnitPrice: decimal.NewFromInt(price)}
}

func TestCreate_CalculaTotalYBeneficio(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.NewMemoryKV())
	f.addProduct(t, "p1", 100, 10, 5)

	got, err := f.svc.Create(ctx, "u1", "Awa", sale("p1", 3, 150))
	require.NoError(t, err)

	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(450)))
	assert.True(t, got.Profit.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, entity.SaleCompleted, got.Status)
	assert.Equal(t, "Awa", got.EmployeeName)
	assert.Equal(t, fixedNow, got.Date)
	assert.Equal(t, 7, f.stock(t, "p1"))

	list, err := f.notifs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, entity.NotificationSuccess, list.Items[0].Type)
	assert.Equal(t, got.ID, list.Items[0].LinkItemID)
}

func TestCancel_ReponeStockYNotifica(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.NewMemoryKV())
	f.addProduct(t, "p1", 100, 10, 5)
	created, err := f.svc.Create(ctx, "u1", "Awa", sale("p1", 3, 150))
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, created.ID, "  erreur ", "Awa")
	require.NoError(t, err)

	assert.Equal(t, entity.SaleCancelled, cancelled.Status)
	assert.Equal(t, "erreur", cancelled.CancelReason)
	assert.Equal(t, "Awa", cancelled.CancelledBy)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 10, f.stock(t, "p1"))

	list, err := f.notifs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, entity.NotificationWarning, list.Items[0].Type)
	assert.Equal(t, "Vente annulée", list.Items[0].Title)
}

func TestCancel_SegundaVezSeRechaza(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.NewMemoryKV())
	f.addProduct(t, "p1", 100, 10, 5)
	created, err := f.svc.Create(ctx, "u1", "Awa", sale("p1", 3, 150))
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, created.ID, "erreur", "Awa")
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, created.ID, "encore", "Awa")
	assert.ErrorIs(t, err, domain.ErrSaleAlreadyCancelled)
	assert.Equal(t, 10, f.stock(t, "p1"), "el stock no se repone dos veces")

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "erreur", got.CancelReason)
}

func TestCancel_MotivoObligatorio(t *testing.T) {
	f := newFixture(t, storage.NewMemoryKV())
	_, err := f.svc.Cancel(context.Background(), "s1", "   ", "Awa")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.NewMemoryKV())
	f.addProduct(t, "p1", 100, 10, 5)

	_, err := f.svc.Create(ctx, "u1", "Awa", sale("p1", 0, 150))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.Create(ctx, "u1", "Awa", sale("p1", 1, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.Create(ctx, "u1", "Awa", sale("nope", 1, 150))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.Create(ctx, "u1", "Awa", sale("p1", 11, 150))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, f.stock(t, "p1"))
	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_FalloAlGuardarNoDejaRastro(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{MemoryKV: storage.NewMemoryKV()}
	f := newFixture(t, kv)
	f.addProduct(t, "p1", 100, 10, 5)

	kv.fail = true
	_, err := f.svc.Create(ctx, "u1", "Awa", sale("p1", 3, 150))
	require.Error(t, err)

	assert.Equal(t, 10, f.stock(t, "p1"))
	list, _ := f.svc.List(ctx)
	assert.Empty(t, list)
	notifs, _ := f.notifs.List(ctx)
	assert.Empty(t, notifs.Items)
}

func TestCreate_FalloDeNotificacionNoDeshaceLaVenta(t *testing.T) {
	ctx := context.Background()
	st, err := storage.Open(ctx, storage.NewMemoryKV(), nil)
	require.NoError(t, err)
	require.NoError(t, st.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Huile", PurchasePrice: decimal.NewFromInt(100), Quantity: 4}))
	svc := sales.NewService(st.Tx, st.Products, st.Sales, st.Settings, brokenNotifier{}, settings.NewUseCase(st.Settings), nil)

	_, err = svc.Create(ctx, "u1", "Awa", sale("p1", 1, 150))
	require.NoError(t, err)
	list, _ := svc.List(ctx)
	assert.Len(t, list, 1)
}

func TestCreate_AlertasDeStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.NewMemoryKV())
	f.addProduct(t, "p1", 100, 6, 5)

	_, err := f.svc.Create(ctx, "u1", "Awa", sale("p1", 2, 150))
	require.NoError(t, err)
	list, _ := f.notifs.List(ctx)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Stock faible", list.Items[0].Title)
	assert.Equal(t, entity.NotificationWarning, list.Items[0].Type)

	_, err = f.svc.Create(ctx, "u1", "Awa", sale("p1", 4, 150))
	require.NoError(t, err)
	list, _ = f.notifs.List(ctx)
	require.Len(t, list.Items, 4)
	assert.Equal(t, "Rupture de stock", list.Items[0].Title)
	assert.Equal(t, entity.NotificationError, list.Items[0].Type)
}

func TestCreate_AlertasDesactivadas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.NewMemoryKV())
	f.addProduct(t, "p1", 100, 1, 5)
	_, err := f.settings.Update(ctx, dto.SettingsDTO{CompanyName: "Ma Boutique"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, "u1", "Awa", sale("p1", 1, 150))
	require.NoError(t, err)
	list, _ := f.notifs.List(ctx)
	assert.Len(t, list.Items, 1, "solo la notificación de la venta")
}

func TestCreate_VentasConcurrentesNoSobrevenden(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.NewMemoryKV())
	f.addProduct(t, "p1", 100, 5, 0)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.Create(ctx, "u1", "Awa", sale("p1", 1, 150)); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, 0, f.stock(t, "p1"))
}

func TestDeleteCancelled_ConContrasena(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.NewMemoryKV())
	f.addProduct(t, "p1", 100, 10, 5)
	require.NoError(t, f.settings.SetDeletePassword(ctx, dto.DeletePasswordRequest{New: "0000"}))

	done, err := f.svc.Create(ctx, "u1", "Awa", sale("p1", 1, 150))
	require.NoError(t, err)
	toCancel, err := f.svc.Create(ctx, "u1", "Awa", sale("p1", 2, 150))
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, toCancel.ID, "doublon", "Awa")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteCancelled(ctx, toCancel.ID, "1111"), domain.ErrInvalidDeletePassword)
	assert.ErrorIs(t, f.svc.DeleteCancelled(ctx, done.ID, "0000"), domain.ErrSaleNotCancelled)
	assert.ErrorIs(t, f.svc.DeleteCancelled(ctx, "nope", "0000"), domain.ErrNotFound)
	require.NoError(t, f.svc.DeleteCancelled(ctx, toCancel.ID, "0000"))

	list, _ := f.svc.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, done.ID, list[0].ID)
	assert.Equal(t, 9, f.stock(t, "p1"), "eliminar no toca el stock")
}

func TestDeleteAllCancelled(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.NewMemoryKV())
	f.addProduct(t, "p1", 100, 10, 0)
	for i := 0; i < 3; i++ {
		s, err := f.svc.Create(ctx, "u1", "Awa", sale("p1", 1, 150))
		require.NoError(t, err)
		if i < 2 {
			_, err = f.svc.Cancel(ctx, s.ID, "erreur", "Awa")
			require.NoError(t, err)
		}
	}

	n, err := f.svc.DeleteAllCancelled(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	list, _ := f.svc.List(ctx)
	assert.Len(t, list, 1)
}

func TestList_ProductoEliminadoUsaMarcador(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.NewMemoryKV())
	f.addProduct(t, "p1", 100, 10, 0)
	_, err := f.svc.Create(ctx, "u1", "Awa", sale("p1", 1, 150))
	require.NoError(t, err)
	require.NoError(t, f.st.Products.Delete(ctx, "p1"))

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sales.DeletedProduct, list[0].ProductName)
}
