package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/notification"
)

// NotificationHandler lectura y limpieza de notificaciones.
type NotificationHandler struct {
	uc *notification.UseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notification.UseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Listar notificaciones
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkAsRead godoc
// @Summary      Marcar como leída
// @Tags         notifications
// @Security     Bearer
// @Param        id   path  string  true  "ID de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.MarkAsRead(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllAsRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Security     Bearer
// @Success      204
// @Router       /api/notifications/read-all [post]
func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllAsRead(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Clear godoc
// @Summary      Borrar todas las notificaciones
// @Tags         notifications
// @Security     Bearer
// @Success      204
// @Router       /api/notifications [delete]
func (h *NotificationHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
