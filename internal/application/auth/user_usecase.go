package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/id"
)

// UserUseCase gestión de usuarios y de sus códigos de acceso.
type UserUseCase struct {
	users    repository.UserRepository
	codes    repository.UserCodeRepository
	sessions repository.SessionRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, codes repository.UserCodeRepository, sessions repository.SessionRepository) *UserUseCase {
	return &UserUseCase{users: users, codes: codes, sessions: sessions}
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

// Create crea un usuario con su código. El nombre es único sin distinguir mayúsculas.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "el nombre es obligatorio")
	}
	if err := validateRole(in.Role); err != nil {
		return nil, err
	}
	if err := ValidateCode(in.Code); err != nil {
		return nil, err
	}
	existing, err := uc.users.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := HashCode(in.Code)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:     id.New(),
		Name:   name,
		Email:  strings.TrimSpace(in.Email),
		Role:   in.Role,
		Avatar: in.Avatar,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.codes.SetHash(ctx, user.ID, hash); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Update aplica los campos informados. Si el usuario es el de la sesión, la sesión se actualiza.
// El nombre único y la regla del último administrador se evalúan con los usuarios bloqueados.
func (uc *UserUseCase) Update(ctx context.Context, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var name string
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name", "el nombre es obligatorio")
		}
	}
	user, err := uc.users.UpdateFunc(ctx, userID, func(user *entity.User, all []entity.User) error {
		if in.Name != nil {
			for i := range all {
				if all[i].ID != user.ID && strings.EqualFold(all[i].Name, name) {
					return domain.ErrDuplicate
				}
			}
			user.Name = name
		}
		if in.Email != nil {
			user.Email = strings.TrimSpace(*in.Email)
		}
		if in.Avatar != nil {
			user.Avatar = *in.Avatar
		}
		if in.Role != nil && *in.Role != user.Role {
			if err := validateRole(*in.Role); err != nil {
				return err
			}
			if user.IsAdmin() {
				if err := anotherAdmin(all, user.ID); err != nil {
					return err
				}
			}
			user.Role = *in.Role
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := uc.refreshSession(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete elimina un usuario y su código. No se puede eliminar a uno mismo ni al último administrador.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, userID string) error {
	if actorID == userID {
		return domain.Invalid("id", "no puede eliminar su propio usuario")
	}
	err := uc.users.DeleteFunc(ctx, userID, func(user entity.User, all []entity.User) error {
		if user.IsAdmin() {
			return anotherAdmin(all, user.ID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return uc.codes.Delete(ctx, userID)
}

// ChangeCode reemplaza el código de acceso de un usuario.
func (uc *UserUseCase) ChangeCode(ctx context.Context, userID, code string) error {
	if err := ValidateCode(code); err != nil {
		return err
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := HashCode(code)
	if err != nil {
		return err
	}
	return uc.codes.SetHash(ctx, userID, hash)
}

// anotherAdmin ErrLastAdmin si nadie salvo exceptID tiene rol admin.
func anotherAdmin(all []entity.User, exceptID string) error {
	for i := range all {
		if all[i].ID != exceptID && all[i].IsAdmin() {
			return nil
		}
	}
	return domain.ErrLastAdmin
}

func (uc *UserUseCase) refreshSession(ctx context.Context, user *entity.User) error {
	current, err := uc.sessions.Current(ctx)
	if err != nil || current == nil || current.User.ID != user.ID {
		return err
	}
	current.User = *user
	return uc.sessions.Save(ctx, current)
}

func validateRole(role string) error {
	if role != entity.RoleAdmin && role != entity.RoleEmployee {
		return domain.Invalid("role", "el rol debe ser admin o employee")
	}
	return nil
}
