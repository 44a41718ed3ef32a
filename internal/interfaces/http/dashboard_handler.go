package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Gestion-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero y la búsqueda global.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	search *appanalytics.SearchUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, search *appanalytics.SearchUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, search: search}
}

// GetStats godoc
// @Summary      Indicadores globales
// @Description  Se recalculan en cada llamada. today_sales suma todas las ventas completadas.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetAlerts godoc
// @Summary      Alertas de stock
// @Description  Productos agotados primero, después los de stock bajo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockAlertDTO
// @Router       /api/dashboard/alerts [get]
func (h *DashboardHandler) GetAlerts(c *fiber.Ctx) error {
	out, err := h.uc.GetAlerts(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetSummary godoc
// @Summary      Resumen del tablero
// @Description  Indicadores, alertas, 5 ventas recientes, serie de 6 meses y gastos por categoría.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// Search godoc
// @Summary      Búsqueda global
// @Tags         search
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  true  "Texto a buscar"
// @Success      200  {object}  dto.SearchResponse
// @Router       /api/search [get]
func (h *DashboardHandler) Search(c *fiber.Ctx) error {
	out, err := h.search.Search(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
