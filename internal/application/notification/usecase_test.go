package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/notification"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
)

func newUseCase(t *testing.T) *notification.UseCase {
	t.Helper()
	st, err := storage.Open(context.Background(), storage.NewMemoryKV(), nil)
	require.NoError(t, err)
	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	return notification.NewUseCase(st.Notifications).WithClock(func() time.Time { return now })
}

func TestAdd_AntepuestaYSinLeer(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	_, err := uc.Add(ctx, notification.Input{Title: "Premier", Type: entity.NotificationInfo})
	require.NoError(t, err)
	second, err := uc.Add(ctx, notification.Input{Title: "Second", Type: entity.NotificationSuccess, LinkTo: "/sales", LinkItemID: "s1"})
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, second.ID, list.Items[0].ID)
	assert.Equal(t, "/sales", list.Items[0].LinkTo)
	assert.Equal(t, 2, list.UnreadCount)
	assert.False(t, list.Items[1].Read)
}

func TestAdd_TipoVacioEsInfo(t *testing.T) {
	n, err := newUseCase(t).Add(context.Background(), notification.Input{Title: "Info"})
	require.NoError(t, err)
	assert.Equal(t, entity.NotificationInfo, n.Type)
}

func TestAdd_Validacion(t *testing.T) {
	uc := newUseCase(t)
	_, err := uc.Add(context.Background(), notification.Input{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Add(context.Background(), notification.Input{Title: "x", Type: "critical"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarcarLeidasYLimpiar(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	a, err := uc.Add(ctx, notification.Input{Title: "A"})
	require.NoError(t, err)
	_, err = uc.Add(ctx, notification.Input{Title: "B"})
	require.NoError(t, err)

	require.NoError(t, uc.MarkAsRead(ctx, a.ID))
	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.UnreadCount)

	assert.ErrorIs(t, uc.MarkAsRead(ctx, "inexistente"), domain.ErrNotFound)

	require.NoError(t, uc.MarkAllAsRead(ctx))
	list, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Zero(t, list.UnreadCount)

	require.NoError(t, uc.Clear(ctx))
	list, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
