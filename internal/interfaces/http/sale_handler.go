package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
)

// SaleHandler registro, anulación y purga de ventas.
type SaleHandler struct {
	svc *sales.Service
}

// NewSaleHandler construye el handler.
func NewSaleHandler(svc *sales.Service) *SaleHandler {
	return &SaleHandler{svc: svc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta el stock del producto en la misma operación. El vendedor es el usuario del token.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Producto, cantidad y precio unitario"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Create(c.Context(), GetUserID(c), GetUserName(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas (la más reciente primero)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Anular venta
// @Description  Repone el stock. Una venta anulada no se puede volver a anular.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.CancelSaleRequest  true  "Motivo"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.CancelSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Cancel(c.Context(), id, in.Reason, GetUserName(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCancelled godoc
// @Summary      Eliminar una venta anulada
// @Tags         sales
// @Security     Bearer
// @Param        id                 path    string  true   "ID de la venta"
// @Param        X-Delete-Password  header  string  false  "Contraseña de eliminación"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) DeleteCancelled(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.svc.DeleteCancelled(c.Context(), id, c.Get(DeletePasswordHeader)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAllCancelled godoc
// @Summary      Purgar las ventas anuladas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        X-Delete-Password  header  string  false  "Contraseña de eliminación"
// @Success      200  {object}  dto.CountResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/sales/cancelled [delete]
func (h *SaleHandler) DeleteAllCancelled(c *fiber.Ctx) error {
	n, err := h.svc.DeleteAllCancelled(c.Context(), c.Get(DeletePasswordHeader))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CountResponse{Count: n})
}
