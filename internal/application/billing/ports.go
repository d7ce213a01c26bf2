package billing

import (
	"context"
	"strconv"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos de facturación.
// Si fn devuelve error, nada de lo escrito por fn queda persistido.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		discountRepo repository.DiscountRepository,
	) error) error
}

// ReportInvalidator invalida los reportes cacheados cuando cambian las facturas.
type ReportInvalidator interface {
	Bump(ctx context.Context) error
}

// InvoiceDocument datos necesarios para imprimir una factura (PDF o recibo).
type InvoiceDocument struct {
	Invoice      *entity.Invoice
	ProductNames map[int64]string
	Discounts    []*entity.Discount
	IssuedBy     string // nombre del usuario que facturó
}

// ProductName devuelve el nombre del producto de la línea o un texto de respaldo.
func (d *InvoiceDocument) ProductName(productID int64) string {
	if name, ok := d.ProductNames[productID]; ok && name != "" {
		return name
	}
	return "Producto #" + strconv.FormatInt(productID, 10)
}

// InvoicePDFGenerator puerto para la representación gráfica de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}
