package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/settings"
)

// AuthHandler maneja login, cambio de usuario, logout y recuperación.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	settings *settings.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, settings *settings.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc, settings: settings}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "nombre y código de acceso"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" || in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y code son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Switch godoc
// @Summary      Cambiar de usuario
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SwitchUserRequest  true  "usuario destino y su código"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/switch [post]
func (h *AuthHandler) Switch(c *fiber.Ctx) error {
	var in dto.SwitchUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Switch(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecoveryQuestion godoc
// @Summary      Pregunta de seguridad
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.RecoveryQuestionResponse
// @Router       /api/auth/recovery-question [get]
func (h *AuthHandler) RecoveryQuestion(c *fiber.Ctx) error {
	out, err := h.settings.RecoveryQuestion(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recover godoc
// @Summary      Restablecer el código del administrador
// @Description  Con la respuesta correcta a la pregunta de seguridad fija un nuevo código. El anterior nunca se revela.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecoverRequest  true  "respuesta y nuevo código"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/recover [post]
func (h *AuthHandler) Recover(c *fiber.Ctx) error {
	var in dto.RecoverRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Recover(c.Context(), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "código restablecido"})
}
