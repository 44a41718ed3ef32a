package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/finance"
)

// FinanceHandler libro de ingresos y gastos (solo admin).
type FinanceHandler struct {
	uc *finance.UseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.UseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// List godoc
// @Summary      Listar movimientos
// @Tags         finances
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  false  "income | expense"
// @Param        q     query  string  false  "Texto en descripción o categoría"
// @Success      200   {object}  dto.FinanceListResponse
// @Router       /api/finances [get]
func (h *FinanceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("type"), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Catálogo de categorías
// @Tags         finances
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FinanceCategoriesResponse
// @Router       /api/finances/categories [get]
func (h *FinanceHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.uc.Categories())
}

// Create godoc
// @Summary      Registrar movimiento
// @Tags         finances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FinancialEntryRequest  true  "Movimiento"
// @Success      201   {object}  dto.FinancialEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/finances [post]
func (h *FinanceHandler) Create(c *fiber.Ctx) error {
	var in dto.FinancialEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar movimiento
// @Tags         finances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.FinancialEntryRequest  true  "Movimiento"
// @Success      200   {object}  dto.FinancialEntryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/finances/{id} [put]
func (h *FinanceHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.FinancialEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         finances
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Router       /api/finances/{id} [delete]
func (h *FinanceHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
