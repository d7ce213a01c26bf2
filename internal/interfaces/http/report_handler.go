package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/analytics"
)

// ReportHandler expone estadísticas de facturación y reportes de ganancia.
type ReportHandler struct {
	uc *analytics.ReportsUseCase
}

func NewReportHandler(uc *analytics.ReportsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

type periodQuery struct {
	Year  int `query:"year"`
	Month int `query:"month"`
}

// InvoiceStats godoc
// @Summary      Estadísticas de facturas
// @Description  Facturas de hoy y del mes, ventas totales e ingresos del mes.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InvoiceStatsResponse
// @Router       /api/estadisticas-facturas [get]
func (h *ReportHandler) InvoiceStats(c *fiber.Ctx) error {
	out, err := h.uc.InvoiceStats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MonthlySales godoc
// @Summary      Ventas por mes
// @Description  Siempre devuelve los meses 1..12; los meses sin ventas valen 0.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año (default: actual)"
// @Success      200  {object}  dto.MonthlySalesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ventas-anuales [get]
func (h *ReportHandler) MonthlySales(c *fiber.Ctx) error {
	var q periodQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_PARAMS", "year debe ser numérico")
	}
	out, err := h.uc.MonthlySales(c.UserContext(), q.Year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DailySales godoc
// @Summary      Ventas por día del mes
// @Description  Siempre devuelve los días 1..31.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "Año (default: actual)"
// @Param        month  query  int  false  "Mes 1-12 (default: actual)"
// @Success      200  {object}  dto.DailySalesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ventas-diarias [get]
func (h *ReportHandler) DailySales(c *fiber.Ctx) error {
	var q periodQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_PARAMS", "year y month deben ser numéricos")
	}
	out, err := h.uc.DailySales(c.UserContext(), q.Year, q.Month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ProfitLines godoc
// @Summary      Ganancia por línea vendida
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LineProfitResponse
// @Router       /api/reportes/ganancias [get]
func (h *ReportHandler) ProfitLines(c *fiber.Ctx) error {
	out, err := h.uc.ProfitLines(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ProfitByProduct godoc
// @Summary      Ganancia agregada por producto y tipo de venta
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductProfitResponse
// @Router       /api/reportes/ganancias-por-producto [get]
func (h *ReportHandler) ProfitByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ProfitByProduct(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
