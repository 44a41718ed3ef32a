package storage

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo agrupa tres claves: app_settings, app_delete_password y app_recovery_question.
type SettingsRepo struct {
	settings *document[entity.Settings]
	password *document[string]
	recovery *document[entity.RecoveryQuestion]
}

// Get devuelve los parámetros guardados o los valores por defecto.
func (r *SettingsRepo) Get(_ context.Context) (*entity.Settings, error) {
	if s := r.settings.get(); s != nil {
		return s, nil
	}
	def := entity.DefaultSettings()
	return &def, nil
}

func (r *SettingsRepo) Save(ctx context.Context, settings *entity.Settings) error {
	return r.settings.set(ctx, *settings)
}

func (r *SettingsRepo) DeletePasswordHash(_ context.Context) (string, error) {
	if h := r.password.get(); h != nil {
		return *h, nil
	}
	return "", nil
}

func (r *SettingsRepo) SetDeletePasswordHash(ctx context.Context, hash string) error {
	if hash == "" {
		return r.password.clear(ctx)
	}
	return r.password.set(ctx, hash)
}

func (r *SettingsRepo) RecoveryQuestion(_ context.Context) (*entity.RecoveryQuestion, error) {
	return r.recovery.get(), nil
}

func (r *SettingsRepo) SetRecoveryQuestion(ctx context.Context, q *entity.RecoveryQuestion) error {
	return r.recovery.set(ctx, *q)
}
