package billing

import (
	"context"
	"fmt"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	discountRepo repository.DiscountRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	discountRepo repository.DiscountRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		discountRepo: discountRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF devuelve los bytes del PDF y el nombre de archivo sugerido.
// domain.ErrNotFound si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID int64) (pdfBytes []byte, filename string, err error) {
	doc, err := loadDocument(ctx, uc.invoiceRepo, uc.discountRepo, uc.productRepo, uc.userRepo, invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%06d.pdf", invoiceID), nil
}
