// Package storage implementa los repositorios de dominio sobre un almacén clave-valor:
// cada colección (productos, ventas, usuarios...) vive como un documento JSON bajo su propia clave,
// se carga una vez al arrancar y se escribe completa en cada mutación (write-through).
package storage

import "context"

// KV puerto de persistencia clave → documento JSON. Lo implementan MemoryKV y los backends
// redis, postgres y mysql.
type KV interface {
	// Get devuelve el documento y false si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	// PutMany escribe todas las claves o ninguna.
	PutMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
}

// Claves de cada colección.
const (
	KeyProducts         = "app_products"
	KeyCategories       = "app_categories"
	KeySales            = "app_sales"
	KeyFinances         = "app_finances"
	KeyUsers            = "app_users"
	KeyUserCodes        = "app_user_codes"
	KeyCurrentUser      = "app_current_user"
	KeyNotifications    = "app_notifications"
	KeyReports          = "app_reports"
	KeySettings         = "app_settings"
	KeyDeletePassword   = "app_delete_password"
	KeyRecoveryQuestion = "app_recovery_question"
)
