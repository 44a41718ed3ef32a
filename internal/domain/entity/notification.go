package entity

import "time"

// Tipos de notificación.
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationError   = "error"
	NotificationSuccess = "success"
)

// Notification evento visible para el usuario. LinkTo / LinkItemID permiten navegar al elemento.
type Notification struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
	LinkTo     string    `json:"linkTo,omitempty"`
	LinkItemID string    `json:"linkItemId,omitempty"`
}
