package sales

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/application/notification"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// TxRunner ejecuta una función con repositorios de productos y ventas atados a una transacción.
// Si fn devuelve error no se aplica ningún cambio.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
	) error) error
}

// Notifier recibe los eventos del flujo de ventas.
type Notifier interface {
	Add(ctx context.Context, in notification.Input) (*entity.Notification, error)
}

// PasswordVerifier valida la contraseña de eliminación.
type PasswordVerifier interface {
	VerifyDeletePassword(ctx context.Context, password string) error
}
