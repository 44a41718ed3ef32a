package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrSaleAlreadyCancelled  = errors.New("la venta ya está anulada")
	ErrSaleNotCancelled      = errors.New("solo se pueden eliminar ventas anuladas")
	ErrCategoryInUse         = errors.New("la categoría tiene productos asociados")
	ErrInvalidCode           = errors.New("código de acceso incorrecto")
	ErrInvalidRecoveryAnswer = errors.New("respuesta de recuperación incorrecta")
	ErrInvalidDeletePassword = errors.New("contraseña de eliminación incorrecta")
	ErrLastAdmin             = errors.New("debe existir al menos un administrador")
)

// ValidationError describe qué campo falló; envuelve ErrInvalidInput para errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid atajo para construir un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
