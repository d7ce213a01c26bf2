package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/facturas.
// descuento_total se valida en el caso de uso (rechazo "negative total discount").
type CreateInvoiceRequest struct {
	UserID         int64                `json:"usuario_id" validate:"gte=0"`
	CustomerName   string               `json:"nombre_cliente" validate:"max=255"`
	DeliveryDate   *Date                `json:"fecha_entrega"`
	ShippingCost   decimal.Decimal      `json:"costo_envio" validate:"gte=0"`
	DescuentoTotal decimal.Decimal      `json:"descuento_total"`
	Items          []InvoiceItemRequest `json:"productos" validate:"dive"`
}

// InvoiceItemRequest línea solicitada. precio_unitario se acepta por compatibilidad pero
// el precio cobrado siempre sale del catálogo.
type InvoiceItemRequest struct {
	ProductID       int64            `json:"producto_id" validate:"required,gt=0"`
	Quantity        int              `json:"cantidad" validate:"required,gt=0"`
	UnitPrice       *decimal.Decimal `json:"precio_unitario,omitempty"`
	PerUnitDiscount decimal.Decimal  `json:"descuento_por_unidad" validate:"gte=0"`
	SaleMode        string           `json:"tipo_venta" validate:"omitempty,oneof=Unidad Quintal"`
}

// InvoiceResponse factura con detalle, descuentos aplicados y totales.
type InvoiceResponse struct {
	ID             int64                 `json:"id"`
	CreatedAt      time.Time             `json:"fecha_creacion"`
	UserID         int64                 `json:"usuario_id"`
	CustomerName   string                `json:"nombre_cliente"`
	DeliveryDate   *Date                 `json:"fecha_entrega"`
	ShippingCost   decimal.Decimal       `json:"costo_envio"`
	DescuentoTotal decimal.Decimal       `json:"descuento_total"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	Total          decimal.Decimal       `json:"total"`
	Details        []InvoiceLineResponse `json:"detalles"`
	Discounts      []DiscountResponse    `json:"descuentos,omitempty"`
}

// InvoiceLineResponse línea de factura.
type InvoiceLineResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"producto_id"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	SaleMode  string          `json:"tipo_venta"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// InvoiceLineDetailResponse línea con datos del producto (GET /api/facturas-detalle).
type InvoiceLineDetailResponse struct {
	ID                    int64            `json:"id"`
	InvoiceID             int64            `json:"factura"`
	ProductID             int64            `json:"producto"`
	ProductName           string           `json:"producto_nombre"`
	Category              string           `json:"producto_categoria"`
	PricePerUnit          *decimal.Decimal `json:"producto_precio_unidad"`
	PricePerHundredweight *decimal.Decimal `json:"producto_precio_quintal"`
	Quantity              int              `json:"cantidad"`
	UnitPrice             decimal.Decimal  `json:"precio_unitario"`
	SaleMode              string           `json:"tipo_venta"`
	Subtotal              decimal.Decimal  `json:"subtotal"`
}

// FlatInvoiceRow fila de la vista facturas × detalle (GET /api/facturas-completas).
type FlatInvoiceRow struct {
	InvoiceID    int64           `json:"factura_id"`
	CreatedAt    time.Time       `json:"fecha_creacion"`
	CustomerName string          `json:"nombre_cliente"`
	LineID       int64           `json:"detalle_id"`
	ProductID    int64           `json:"producto_id"`
	ProductName  string          `json:"producto"`
	Quantity     int             `json:"cantidad"`
	UnitPrice    decimal.Decimal `json:"precio_unitario"`
	SaleMode     string          `json:"tipo_venta"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// CreateInvoiceResponse confirmación de creación con la factura completa.
type CreateInvoiceResponse struct {
	Message string           `json:"message"`
	ID      int64            `json:"id"`
	Invoice *InvoiceResponse `json:"factura"`
}
