package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/settings"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
)

func newUseCase(t *testing.T) *settings.UseCase {
	t.Helper()
	st, err := storage.Open(context.Background(), storage.NewMemoryKV(), nil)
	require.NoError(t, err)
	return settings.NewUseCase(st.Settings)
}

func TestGet_ValoresPorDefecto(t *testing.T) {
	out, err := newUseCase(t).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings().CompanyName, out.CompanyName)
	assert.False(t, out.HasDeletePassword)
}

func TestUpdate_ValidaNombreYEmail(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	_, err := uc.Update(ctx, dto.SettingsDTO{CompanyName: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, dto.SettingsDTO{CompanyName: "Boutique", Email: "sin-arroba"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Update(ctx, dto.SettingsDTO{CompanyName: "  Boutique Awa ", Email: "awa@shop.sn", LowStockAlerts: true})
	require.NoError(t, err)
	assert.Equal(t, "Boutique Awa", out.CompanyName)
	assert.True(t, out.LowStockAlerts)
	assert.False(t, out.OutOfStockAlerts)
}

func TestContrasenaEliminacion(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	// Sin contraseña cualquier valor pasa.
	require.NoError(t, uc.VerifyDeletePassword(ctx, ""))

	assert.ErrorIs(t, uc.SetDeletePassword(ctx, dto.DeletePasswordRequest{New: "abc"}), domain.ErrInvalidInput)
	require.NoError(t, uc.SetDeletePassword(ctx, dto.DeletePasswordRequest{New: "secret"}))

	assert.ErrorIs(t, uc.VerifyDeletePassword(ctx, "otra"), domain.ErrInvalidDeletePassword)
	assert.NoError(t, uc.VerifyDeletePassword(ctx, "secret"))

	out, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, out.HasDeletePassword)

	// Cambiarla exige la actual.
	assert.ErrorIs(t, uc.SetDeletePassword(ctx, dto.DeletePasswordRequest{Current: "mala", New: ""}), domain.ErrInvalidDeletePassword)
	require.NoError(t, uc.SetDeletePassword(ctx, dto.DeletePasswordRequest{Current: "secret", New: ""}))
	assert.NoError(t, uc.VerifyDeletePassword(ctx, "cualquiera"))
}

func TestPreguntaDeRecuperacion(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	q, err := uc.RecoveryQuestion(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultRecoveryQuestion, q.Question)
	assert.ErrorIs(t, uc.CheckRecoveryAnswer(ctx, "sallen"), domain.ErrInvalidRecoveryAnswer)

	assert.ErrorIs(t, uc.SetRecoveryQuestion(ctx, dto.RecoveryQuestionRequest{Question: "Ville ?", Answer: "  "}), domain.ErrInvalidInput)
	require.NoError(t, uc.SetRecoveryQuestion(ctx, dto.RecoveryQuestionRequest{Question: "Ville natale ?", Answer: "Dakar"}))

	q, err = uc.RecoveryQuestion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ville natale ?", q.Question)

	assert.NoError(t, uc.CheckRecoveryAnswer(ctx, "  DAKAR "))
	assert.ErrorIs(t, uc.CheckRecoveryAnswer(ctx, "Thiès"), domain.ErrInvalidRecoveryAnswer)
}
