package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Gestion-api/internal/application/settings"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/config"
	"github.com/jhoicas/Gestion-api/pkg/id"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

// Bootstrap instala los datos iniciales cuando no hay usuarios: un administrador, un empleado,
// la pregunta de recuperación por defecto y los parámetros por defecto.
// Devuelve false si el almacenamiento ya estaba inicializado.
func Bootstrap(
	ctx context.Context,
	users repository.UserRepository,
	codes repository.UserCodeRepository,
	settingsRepo repository.SettingsRepository,
	seed config.SeedConfig,
	log *logger.Logger,
) (bool, error) {
	if log == nil {
		log = logger.Nop()
	}
	existing, err := users.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	defaults := []struct {
		user entity.User
		code string
	}{
		{entity.User{ID: id.New(), Name: "Administrateur", Email: "admin@stock.com", Role: entity.RoleAdmin}, seed.AdminCode},
		{entity.User{ID: id.New(), Name: "Employé 1", Email: "employe1@stock.com", Role: entity.RoleEmployee}, seed.EmployeeCode},
	}
	for _, d := range defaults {
		if err := ValidateCode(d.code); err != nil {
			return false, fmt.Errorf("código inicial de %s: %w", d.user.Name, err)
		}
		hash, err := HashCode(d.code)
		if err != nil {
			return false, err
		}
		u := d.user
		if err := users.Create(ctx, &u); err != nil {
			return false, err
		}
		if err := codes.SetHash(ctx, u.ID, hash); err != nil {
			return false, err
		}
	}

	if q, err := settingsRepo.RecoveryQuestion(ctx); err != nil {
		return false, err
	} else if q == nil {
		answer, err := settings.HashAnswer(seed.RecoveryAnswer)
		if err != nil {
			return false, err
		}
		if err := settingsRepo.SetRecoveryQuestion(ctx, &entity.RecoveryQuestion{
			Question:   entity.DefaultRecoveryQuestion,
			AnswerHash: answer,
		}); err != nil {
			return false, err
		}
	}

	def := entity.DefaultSettings()
	if err := settingsRepo.Save(ctx, &def); err != nil {
		return false, err
	}

	if seed.DeletePassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.DeletePassword), bcrypt.DefaultCost)
		if err != nil {
			return false, err
		}
		if err := settingsRepo.SetDeletePasswordHash(ctx, string(hash)); err != nil {
			return false, err
		}
	}

	log.Info().Int("users", len(defaults)).Msg("almacenamiento inicializado con datos por defecto")
	return true, nil
}
