package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
)

// InvoiceLineView línea de factura con datos de catálogo y de la cabecera, para los listados de lectura.
type InvoiceLineView struct {
	entity.InvoiceLine
	ProductName           string
	Category              string
	PricePerUnit          *decimal.Decimal
	PricePerHundredweight *decimal.Decimal
	CustomerName          string
	InvoiceCreatedAt      time.Time
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Las líneas no tienen Update: son inmutables una vez creadas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateLine(ctx context.Context, line *entity.InvoiceLine) error
	// GetByID devuelve la cabecera con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	// List devuelve facturas recientes primero, cada una con sus líneas.
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	// Delete borra la factura; las líneas y descuentos caen en cascada.
	Delete(ctx context.Context, id int64) error

	GetLine(ctx context.Context, id int64) (*InvoiceLineView, error)
	ListLines(ctx context.Context, limit, offset int) ([]*InvoiceLineView, error)
}

// DiscountRepository bitácora de descuentos (solo inserción y lectura).
type DiscountRepository interface {
	Create(ctx context.Context, d *entity.Discount) error
	GetByID(ctx context.Context, id int64) (*entity.Discount, error)
	List(ctx context.Context) ([]*entity.Discount, error)
	ListByInvoice(ctx context.Context, invoiceID int64) ([]*entity.Discount, error)
	Delete(ctx context.Context, id int64) error
}
