package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/usecase"
)

// PrintHandler cola de impresión consultada por el agente de la impresora térmica.
type PrintHandler struct {
	uc *usecase.PrintUseCase
}

func NewPrintHandler(uc *usecase.PrintUseCase) *PrintHandler {
	return &PrintHandler{uc: uc}
}

// Add godoc
// @Summary      Encolar texto para imprimir
// @Tags         impresion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PrintJobRequest  true  "Texto"
// @Success      201   {object}  dto.PrintJobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/add_print [post]
func (h *PrintHandler) Add(c *fiber.Ctx) error {
	var in dto.PrintJobRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	out, err := h.uc.AddJob(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Pending godoc
// @Summary      Trabajos pendientes
// @Description  Con encoding=cp850 cada trabajo incluye payload en base64 para ESC/POS.
// @Tags         impresion
// @Security     Bearer
// @Produce      json
// @Param        encoding  query  string  false  "cp850"
// @Success      200  {array}   dto.PrintJobResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/get_jobs [get]
func (h *PrintHandler) Pending(c *fiber.Ctx) error {
	out, err := h.uc.ListPending(c.UserContext(), c.Query("encoding"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkPrinted godoc
// @Summary      Marcar trabajo como impreso
// @Tags         impresion
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del trabajo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mark_printed/{id} [post]
func (h *PrintHandler) MarkPrinted(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	if err := h.uc.MarkPrinted(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "trabajo marcado como impreso"})
}
