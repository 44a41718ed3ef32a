package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/settings"
)

// SettingsHandler parámetros de la tienda, contraseña de eliminación y pregunta de seguridad.
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener parámetros
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsDTO
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar parámetros
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SettingsDTO  true  "Parámetros"
// @Success      200   {object}  dto.SettingsDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.SettingsDTO
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetDeletePassword godoc
// @Summary      Cambiar la contraseña de eliminación
// @Description  new vacío quita la contraseña.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.DeletePasswordRequest  true  "Contraseña actual y nueva"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/settings/delete-password [put]
func (h *SettingsHandler) SetDeletePassword(c *fiber.Ctx) error {
	var in dto.DeletePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.SetDeletePassword(c.Context(), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetRecoveryQuestion godoc
// @Summary      Cambiar la pregunta de seguridad
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.RecoveryQuestionRequest  true  "Pregunta y respuesta"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings/recovery-question [put]
func (h *SettingsHandler) SetRecoveryQuestion(c *fiber.Ctx) error {
	var in dto.RecoveryQuestionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.SetRecoveryQuestion(c.Context(), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
