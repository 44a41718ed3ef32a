package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// SettingsRepository parámetros de la tienda, contraseña de eliminación y pregunta de recuperación.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
	DeletePasswordHash(ctx context.Context) (string, error) // "" si no hay contraseña
	SetDeletePasswordHash(ctx context.Context, hash string) error
	RecoveryQuestion(ctx context.Context) (*entity.RecoveryQuestion, error) // nil, nil si no existe
	SetRecoveryQuestion(ctx context.Context, q *entity.RecoveryQuestion) error
}
