// Package settings gestiona los parámetros de la tienda, la contraseña de eliminación
// y la pregunta de recuperación.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

const minDeletePasswordLen = 4

// UseCase casos de uso de configuración.
type UseCase struct {
	repo repository.SettingsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.SettingsRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Get devuelve los parámetros actuales.
func (uc *UseCase) Get(ctx context.Context) (*dto.SettingsDTO, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := uc.repo.DeletePasswordHash(ctx)
	if err != nil {
		return nil, err
	}
	return toSettingsDTO(s, hash != ""), nil
}

// Update reemplaza los parámetros. El nombre de la tienda es obligatorio.
func (uc *UseCase) Update(ctx context.Context, in dto.SettingsDTO) (*dto.SettingsDTO, error) {
	name := strings.TrimSpace(in.CompanyName)
	if name == "" {
		return nil, domain.Invalid("company_name", "el nombre de la tienda es obligatorio")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" && !strings.Contains(email, "@") {
		return nil, domain.Invalid("email", "email inválido")
	}
	s := &entity.Settings{
		CompanyName:      name,
		Address:          strings.TrimSpace(in.Address),
		Phone:            strings.TrimSpace(in.Phone),
		Email:            email,
		LowStockAlerts:   in.LowStockAlerts,
		OutOfStockAlerts: in.OutOfStockAlerts,
		WeeklyReport:     in.WeeklyReport,
	}
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	return uc.Get(ctx)
}

// VerifyDeletePassword valida la contraseña de las operaciones destructivas.
// Sin contraseña configurada cualquier valor es aceptado.
func (uc *UseCase) VerifyDeletePassword(ctx context.Context, password string) error {
	hash, err := uc.repo.DeletePasswordHash(ctx)
	if err != nil {
		return err
	}
	if hash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.ErrInvalidDeletePassword
	}
	return nil
}

// SetDeletePassword cambia la contraseña de eliminación. Si ya existe una, Current debe coincidir.
// New vacío desactiva la protección.
func (uc *UseCase) SetDeletePassword(ctx context.Context, in dto.DeletePasswordRequest) error {
	if err := uc.VerifyDeletePassword(ctx, in.Current); err != nil {
		return err
	}
	if in.New == "" {
		return uc.repo.SetDeletePasswordHash(ctx, "")
	}
	if len(in.New) < minDeletePasswordLen {
		return domain.Invalid("new", fmt.Sprintf("mínimo %d caracteres", minDeletePasswordLen))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.New), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.repo.SetDeletePasswordHash(ctx, string(hash))
}

// RecoveryQuestion devuelve la pregunta de seguridad (sin la respuesta).
func (uc *UseCase) RecoveryQuestion(ctx context.Context) (*dto.RecoveryQuestionResponse, error) {
	q, err := uc.repo.RecoveryQuestion(ctx)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return &dto.RecoveryQuestionResponse{Question: entity.DefaultRecoveryQuestion}, nil
	}
	return &dto.RecoveryQuestionResponse{Question: q.Question}, nil
}

// SetRecoveryQuestion guarda una nueva pregunta con el hash de su respuesta normalizada.
func (uc *UseCase) SetRecoveryQuestion(ctx context.Context, in dto.RecoveryQuestionRequest) error {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return domain.Invalid("question", "la pregunta es obligatoria")
	}
	if NormalizeAnswer(in.Answer) == "" {
		return domain.Invalid("answer", "la respuesta es obligatoria")
	}
	hash, err := HashAnswer(in.Answer)
	if err != nil {
		return err
	}
	return uc.repo.SetRecoveryQuestion(ctx, &entity.RecoveryQuestion{Question: question, AnswerHash: hash})
}

// CheckRecoveryAnswer compara la respuesta con la guardada.
func (uc *UseCase) CheckRecoveryAnswer(ctx context.Context, answer string) error {
	q, err := uc.repo.RecoveryQuestion(ctx)
	if err != nil {
		return err
	}
	if q == nil || q.AnswerHash == "" {
		return domain.ErrInvalidRecoveryAnswer
	}
	err = bcrypt.CompareHashAndPassword([]byte(q.AnswerHash), []byte(NormalizeAnswer(answer)))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.ErrInvalidRecoveryAnswer
	}
	return err
}

// NormalizeAnswer recorta y pasa a minúsculas la respuesta de recuperación.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// HashAnswer hash bcrypt de la respuesta normalizada.
func HashAnswer(answer string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(NormalizeAnswer(answer)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func toSettingsDTO(s *entity.Settings, hasPassword bool) *dto.SettingsDTO {
	return &dto.SettingsDTO{
		CompanyName:       s.CompanyName,
		Address:           s.Address,
		Phone:             s.Phone,
		Email:             s.Email,
		LowStockAlerts:    s.LowStockAlerts,
		OutOfStockAlerts:  s.OutOfStockAlerts,
		WeeklyReport:      s.WeeklyReport,
		HasDeletePassword: hasPassword,
	}
}
