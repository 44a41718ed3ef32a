package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/reporting"
	"github.com/jhoicas/Gestion-api/internal/domain"
)

// DeletePasswordHeader cabecera con la contraseña de eliminación.
const DeletePasswordHeader = "X-Delete-Password"

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: el primer errors.Is que coincide gana.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrSaleAlreadyCancelled, fiber.StatusConflict, "ALREADY_CANCELLED"},
	{domain.ErrSaleNotCancelled, fiber.StatusConflict, "NOT_CANCELLED"},
	{domain.ErrCategoryInUse, fiber.StatusConflict, "CATEGORY_IN_USE"},
	{domain.ErrLastAdmin, fiber.StatusConflict, "LAST_ADMIN"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidCode, fiber.StatusUnauthorized, "INVALID_CODE"},
	{domain.ErrInvalidRecoveryAnswer, fiber.StatusUnauthorized, "INVALID_ANSWER"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInvalidDeletePassword, fiber.StatusForbidden, "INVALID_DELETE_PASSWORD"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{reporting.ErrPDFUnavailable, fiber.StatusNotImplemented, "PDF_UNAVAILABLE"},
}

// writeError traduce un error de dominio a dto.ErrorResponse con su status HTTP.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func missingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
}

func sendFile(c *fiber.Ctx, f *dto.ReportFile) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+f.Filename+`"`)
	return c.Send(f.Body)
}
