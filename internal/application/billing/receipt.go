package billing

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

// ReceiptWidth columnas de la impresora térmica (papel de 80 mm con fuente A).
const ReceiptWidth = 42

// ReceiptUseCase arma el recibo de texto de una factura y lo deja en la cola de impresión.
type ReceiptUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	discountRepo repository.DiscountRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	printRepo    repository.PrintJobRepository
	businessName string
}

func NewReceiptUseCase(
	invoiceRepo repository.InvoiceRepository,
	discountRepo repository.DiscountRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	printRepo repository.PrintJobRepository,
	businessName string,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		invoiceRepo:  invoiceRepo,
		discountRepo: discountRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		printRepo:    printRepo,
		businessName: businessName,
	}
}

// PrintInvoice encola el recibo de la factura y devuelve el trabajo creado.
func (uc *ReceiptUseCase) PrintInvoice(ctx context.Context, invoiceID int64) (*dto.PrintJobResponse, error) {
	doc, err := loadDocument(ctx, uc.invoiceRepo, uc.discountRepo, uc.productRepo, uc.userRepo, invoiceID)
	if err != nil {
		return nil, err
	}
	job := &entity.PrintJob{Text: BuildReceipt(doc, uc.businessName)}
	if err := uc.printRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return &dto.PrintJobResponse{ID: job.ID, Text: job.Text, Printed: job.Printed, CreatedAt: job.CreatedAt}, nil
}

// BuildReceipt texto plano del recibo, ReceiptWidth columnas por renglón.
func BuildReceipt(doc *InvoiceDocument, businessName string) string {
	inv := doc.Invoice
	sep := strings.Repeat("-", ReceiptWidth)
	lines := []string{
		center(strings.ToUpper(businessName)),
		strings.Repeat("=", ReceiptWidth),
		fmt.Sprintf("Factura No. %06d", inv.ID),
		"Fecha: " + inv.CreatedAt.Format("02/01/2006 15:04"),
	}
	if inv.CustomerName != "" {
		lines = append(lines, "Cliente: "+inv.CustomerName)
	}
	if inv.DeliveryDate != nil {
		lines = append(lines, "Entrega: "+inv.DeliveryDate.Format("02/01/2006"))
	}
	if doc.IssuedBy != "" {
		lines = append(lines, "Atendió: "+doc.IssuedBy)
	}
	lines = append(lines, sep)

	for _, l := range inv.Lines {
		name := doc.ProductName(l.ProductID)
		if l.SaleMode == entity.SaleModeHundredweight {
			name += " (qq)"
		}
		lines = append(lines, truncate(name, ReceiptWidth))
		lines = append(lines, leftRight(
			fmt.Sprintf("  %d x Q%s", l.Quantity, l.UnitPrice.StringFixed(2)),
			"Q"+l.Subtotal().StringFixed(2),
		))
	}
	lines = append(lines, sep)
	lines = append(lines, leftRight("Subtotal", "Q"+inv.Subtotal().StringFixed(2)))
	if inv.DescuentoTotal.IsPositive() {
		lines = append(lines, leftRight("Descuento", "-Q"+inv.DescuentoTotal.StringFixed(2)))
	}
	if inv.ShippingCost.IsPositive() {
		lines = append(lines, leftRight("Envío", "Q"+inv.ShippingCost.StringFixed(2)))
	}
	lines = append(lines,
		leftRight("TOTAL", "Q"+inv.Total().StringFixed(2)),
		strings.Repeat("=", ReceiptWidth),
		center("¡Gracias por su compra!"),
		"",
	)
	return strings.Join(lines, "\n")
}

func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= ReceiptWidth {
		return truncate(s, ReceiptWidth)
	}
	return strings.Repeat(" ", (ReceiptWidth-n)/2) + s
}

func leftRight(left, right string) string {
	gap := ReceiptWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
