package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/billing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
)

// InvoiceCounter recibe una marca por cada factura creada (métricas).
type InvoiceCounter interface {
	InvoiceCreated()
}

// InvoiceHandler maneja facturas, su detalle, descuentos, PDF e impresión (protegido).
type InvoiceHandler struct {
	create  *billing.CreateInvoiceUseCase
	query   *billing.InvoiceUseCase
	pdf     *billing.PDFUseCase
	receipt *billing.ReceiptUseCase
	counter InvoiceCounter
}

// NewInvoiceHandler construye el handler. counter puede ser nil.
func NewInvoiceHandler(
	create *billing.CreateInvoiceUseCase,
	query *billing.InvoiceUseCase,
	pdf *billing.PDFUseCase,
	receipt *billing.ReceiptUseCase,
	counter InvoiceCounter,
) *InvoiceHandler {
	return &InvoiceHandler{create: create, query: query, pdf: pdf, receipt: receipt, counter: counter}
}

// Create godoc
// @Summary      Crear factura
// @Description  Crea cabecera, líneas y descuentos en una sola transacción. Si usuario_id es 0 se toma del token.
// @Description  El precio cobrado sale del catálogo: max(0, precio - descuento_por_unidad).
// @Tags         facturas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Factura"
// @Success      201   {object}  dto.CreateInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/facturas [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	if in.UserID == 0 {
		in.UserID = GetUserID(c)
	}
	out, err := h.create.CreateInvoice(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	if h.counter != nil {
		h.counter.InvoiceCreated()
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateInvoiceResponse{
		Message: "Factura creada con éxito",
		ID:      out.ID,
		Invoice: out,
	})
}

// GetByID godoc
// @Summary      Obtener factura con detalle
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	out, err := h.query.GetInvoice(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/facturas [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	page, ok := pageFromQuery(c)
	if !ok {
		return nil
	}
	out, err := h.query.ListInvoices(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Description  Elimina la factura con sus líneas y descuentos.
// @Tags         facturas
// @Security     Bearer
// @Param        id   path  int  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	if err := h.query.DeleteInvoice(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar PDF de la factura
// @Tags         facturas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	data, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(data)
}

// Print godoc
// @Summary      Imprimir recibo
// @Description  Arma el recibo en texto plano y lo deja en la cola de impresión.
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la factura"
// @Success      201  {object}  dto.PrintJobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id}/imprimir [post]
func (h *InvoiceHandler) Print(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	out, err := h.receipt.PrintInvoice(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ── Detalle ──

// ListLines godoc
// @Summary      Listar líneas de factura con datos del producto
// @Tags         facturas-detalle
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InvoiceLineDetailResponse
// @Router       /api/facturas-detalle [get]
func (h *InvoiceHandler) ListLines(c *fiber.Ctx) error {
	page, ok := pageFromQuery(c)
	if !ok {
		return nil
	}
	out, err := h.query.ListLines(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *InvoiceHandler) GetLine(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	out, err := h.query.GetLine(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListFlat godoc
// @Summary      Vista plana factura × línea
// @Tags         facturas-completas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FlatInvoiceRow
// @Router       /api/facturas-completas [get]
func (h *InvoiceHandler) ListFlat(c *fiber.Ctx) error {
	page, ok := pageFromQuery(c)
	if !ok {
		return nil
	}
	out, err := h.query.ListFlat(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Descuentos ──

func (h *InvoiceHandler) ListDiscounts(c *fiber.Ctx) error {
	out, err := h.query.ListDiscounts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *InvoiceHandler) GetDiscount(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	out, err := h.query.GetDiscount(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateDiscount godoc
// @Summary      Registrar descuento manual
// @Tags         descuentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DiscountRequest  true  "tipo Total o Por unidad"
// @Success      201   {object}  dto.DiscountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/descuentos [post]
func (h *InvoiceHandler) CreateDiscount(c *fiber.Ctx) error {
	var in dto.DiscountRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	out, err := h.query.CreateDiscount(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *InvoiceHandler) DeleteDiscount(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return nil
	}
	if err := h.query.DeleteDiscount(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
