package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByName(ctx context.Context, name string) (*entity.User, error) // sin distinguir mayúsculas
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	// UpdateFunc aplica fn al usuario con la colección bloqueada; all es la lista completa
	// antes del cambio. Si fn devuelve error no se guarda nada. ErrUserNotFound si no existe.
	UpdateFunc(ctx context.Context, id string, fn func(user *entity.User, all []entity.User) error) (*entity.User, error)
	// DeleteFunc borra el usuario solo si check no devuelve error, evaluado con la colección bloqueada.
	DeleteFunc(ctx context.Context, id string, check func(user entity.User, all []entity.User) error) error
}

// UserCodeRepository guarda los hashes de los códigos de acceso (clave separada de los usuarios).
type UserCodeRepository interface {
	GetHash(ctx context.Context, userID string) (string, error) // "" si no tiene código
	SetHash(ctx context.Context, userID, hash string) error
	Delete(ctx context.Context, userID string) error
}

// SessionRepository guarda el usuario de la última sesión abierta.
type SessionRepository interface {
	Current(ctx context.Context) (*entity.Session, error) // nil, nil sin sesión
	Save(ctx context.Context, session *entity.Session) error
	Clear(ctx context.Context) error
}
