package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/jwt"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// RecoveryChecker valida la respuesta a la pregunta de seguridad.
type RecoveryChecker interface {
	CheckRecoveryAnswer(ctx context.Context, answer string) error
}

// AuthUseCase casos de uso de autenticación: login, cambio de usuario, logout y recuperación.
type AuthUseCase struct {
	users    repository.UserRepository
	codes    repository.UserCodeRepository
	sessions repository.SessionRepository
	recovery RecoveryChecker
	jwtCfg   JWTConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	users repository.UserRepository,
	codes repository.UserCodeRepository,
	sessions repository.SessionRepository,
	recovery RecoveryChecker,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		users:    users,
		codes:    codes,
		sessions: sessions,
		recovery: recovery,
		jwtCfg:   jwtCfg,
		log:      log.Component("auth"),
		now:      time.Now,
	}
}

// Login busca el usuario por nombre (sin distinguir mayúsculas) y verifica su código.
// Un fallo no abre ni modifica la sesión guardada.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Warn().Str("name", in.Name).Msg("login rechazado: usuario desconocido")
		return nil, domain.ErrInvalidCode
	}
	if err := uc.checkCode(ctx, user.ID, in.Code); err != nil {
		uc.log.Warn().Str("user_id", user.ID).Msg("login rechazado: código incorrecto")
		return nil, err
	}
	return uc.openSession(ctx, user)
}

// Switch cambia el usuario de la sesión verificando el código del usuario destino.
func (uc *AuthUseCase) Switch(ctx context.Context, in dto.SwitchUserRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCode
	}
	if err := uc.checkCode(ctx, user.ID, in.Code); err != nil {
		return nil, err
	}
	return uc.openSession(ctx, user)
}

// Logout borra la sesión guardada.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	return uc.sessions.Clear(ctx)
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Recover restablece el código del primer administrador si la respuesta de seguridad es correcta.
// El código anterior nunca se devuelve.
func (uc *AuthUseCase) Recover(ctx context.Context, in dto.RecoverRequest) error {
	if err := uc.recovery.CheckRecoveryAnswer(ctx, in.Answer); err != nil {
		uc.log.Warn().Msg("recuperación rechazada: respuesta incorrecta")
		return err
	}
	if err := ValidateCode(in.NewCode); err != nil {
		return err
	}
	list, err := uc.users.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range list {
		if !u.IsAdmin() {
			continue
		}
		hash, err := HashCode(in.NewCode)
		if err != nil {
			return err
		}
		if err := uc.codes.SetHash(ctx, u.ID, hash); err != nil {
			return err
		}
		uc.log.Warn().Str("user_id", u.ID).Msg("código de administrador restablecido por recuperación")
		return nil
	}
	return domain.ErrUserNotFound
}

func (uc *AuthUseCase) checkCode(ctx context.Context, userID, code string) error {
	hash, err := uc.codes.GetHash(ctx, userID)
	if err != nil {
		return err
	}
	if hash == "" {
		return domain.ErrInvalidCode
	}
	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.ErrInvalidCode
	}
	return err
}

func (uc *AuthUseCase) openSession(ctx context.Context, user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.sessions.Save(ctx, &entity.Session{User: *user, LoggedAt: now}); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("sesión abierta")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      ToUserResponse(user),
	}, nil
}

// ValidateCode exige un código numérico de 4 a 8 dígitos.
func ValidateCode(code string) error {
	if len(code) < 4 || len(code) > 8 {
		return domain.Invalid("code", "el código debe tener entre 4 y 8 dígitos")
	}
	if strings.Trim(code, "0123456789") != "" {
		return domain.Invalid("code", "el código solo admite dígitos")
	}
	return nil
}

// HashCode hash bcrypt de un código de acceso.
func HashCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ToUserResponse convierte un usuario sin exponer su código.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Avatar: u.Avatar,
	}
}
