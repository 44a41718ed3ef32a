package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/reporting"
)

// ReportHandler generación, historial y exportación de reportes.
type ReportHandler struct {
	uc *reporting.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar reporte
// @Description  Arma el reporte de texto y lo guarda en el historial.
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateReportRequest  true  "Tipo y período"
// @Success      201   {object}  dto.ReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateReportRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Generate(c.Context(), in, GetUserName(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de reportes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReportResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener reporte
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {object}  dto.ReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar reporte guardado (.txt)
// @Tags         reports
// @Security     Bearer
// @Produce      plain
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id}/download [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	f, err := h.uc.Download(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}

// Export godoc
// @Summary      Exportar reporte al vuelo
// @Description  Genera el reporte en texto o PDF sin guardarlo en el historial.
// @Tags         reports
// @Security     Bearer
// @Produce      plain
// @Produce      application/pdf
// @Param        type    query  string  true   "sales | financial | stock | profit"
// @Param        period  query  string  true   "daily | monthly | semester"
// @Param        format  query  string  false  "txt | pdf"  default(txt)
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	var in dto.GenerateReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	f, err := h.uc.Export(c.Context(), in, c.Query("format", reporting.FormatText), GetUserName(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}

// Delete godoc
// @Summary      Eliminar reporte del historial
// @Tags         reports
// @Security     Bearer
// @Param        id   path  string  true  "ID del reporte"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [delete]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
