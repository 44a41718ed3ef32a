package dto

import "time"

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
	LinkTo     string    `json:"link_to,omitempty"`
	LinkItemID string    `json:"link_item_id,omitempty"`
}

// NotificationListResponse lista con el contador de no leídas.
type NotificationListResponse struct {
	Items       []NotificationResponse `json:"items"`
	UnreadCount int                    `json:"unread_count"`
}
