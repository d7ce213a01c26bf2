package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/pricing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
	"github.com/jeancarlo3213/ferrefactura-backend/pkg/logger"
)

// CreateInvoiceUseCase arma la factura (cabecera, líneas y descuentos) en una sola transacción.
type CreateInvoiceUseCase struct {
	txRunner    BillingTxRunner
	invalidator ReportInvalidator
	log         *logger.Logger
}

// NewCreateInvoiceUseCase construye el caso de uso. invalidator y log pueden ser nil.
func NewCreateInvoiceUseCase(txRunner BillingTxRunner, invalidator ReportInvalidator, log *logger.Logger) *CreateInvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CreateInvoiceUseCase{
		txRunner:    txRunner,
		invalidator: invalidator,
		log:         log.Component("facturacion"),
	}
}

type lineInput struct {
	productID int64
	quantity  int
	discount  decimal.Decimal
	mode      entity.SaleMode
}

// CreateInvoice valida la solicitud antes de tocar la base y luego, dentro de la transacción:
// crea la cabecera; por cada línea resuelve el producto, cobra max(0, precio - descuento por unidad)
// y deja un Descuento "Por unidad" si el descuento es mayor que cero.
// Cualquier fallo revierte todo y se reporta como ErrTransactionAborted envolviendo la causa.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	lines, err := validateCreateInvoice(in)
	if err != nil {
		return nil, err
	}

	inv := &entity.Invoice{
		UserID:         in.UserID,
		CustomerName:   in.CustomerName,
		DeliveryDate:   in.DeliveryDate.Ptr(),
		ShippingCost:   in.ShippingCost,
		DescuentoTotal: in.DescuentoTotal,
	}
	var discounts []*entity.Discount

	err = uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		discountRepo repository.DiscountRepository,
	) error {
		inv.Lines = nil
		discounts = nil

		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for i, li := range lines {
			product, err := productRepo.GetByID(ctx, li.productID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %d (línea %d)", domain.ErrNotFound, li.productID, i+1)
			}

			line := &entity.InvoiceLine{
				InvoiceID: inv.ID,
				ProductID: product.ID,
				Quantity:  li.quantity,
				UnitPrice: pricing.NetUnitPrice(product.Price, li.discount),
				SaleMode:  li.mode,
			}
			if err := invoiceRepo.CreateLine(ctx, line); err != nil {
				return err
			}
			inv.Lines = append(inv.Lines, line)

			if li.discount.IsPositive() {
				pid := product.ID
				d := &entity.Discount{
					InvoiceID: inv.ID,
					Kind:      entity.DiscountPerUnit,
					Amount:    li.discount,
					ProductID: &pid,
				}
				if err := discountRepo.Create(ctx, d); err != nil {
					return err
				}
				discounts = append(discounts, d)
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("usuario_id", in.UserID).Int("lineas", len(lines)).Msg("factura revertida")
		if errors.Is(err, domain.ErrTransactionAborted) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionAborted, err)
	}

	if uc.invalidator != nil {
		if err := uc.invalidator.Bump(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo invalidar caché de reportes")
		}
	}
	uc.log.Info().Int64("factura_id", inv.ID).Int("lineas", len(inv.Lines)).Int("descuentos", len(discounts)).
		Str("total", inv.Total().StringFixed(2)).Msg("factura creada")

	return ToInvoiceResponse(inv, discounts), nil
}

// validateCreateInvoice revisa la solicitud completa sin efectos secundarios.
func validateCreateInvoice(in dto.CreateInvoiceRequest) ([]lineInput, error) {
	if in.UserID <= 0 {
		return nil, domain.NewValidationError("usuario_id", "es obligatorio")
	}
	if in.DescuentoTotal.IsNegative() {
		return nil, &domain.ValidationError{
			Field:  "descuento_total",
			Reason: domain.ErrNegativeTotalDiscount.Error(),
			Cause:  domain.ErrNegativeTotalDiscount,
		}
	}
	if in.ShippingCost.IsNegative() {
		return nil, domain.NewValidationError("costo_envio", "no puede ser negativo")
	}

	lines := make([]lineInput, 0, len(in.Items))
	for i, it := range in.Items {
		field := fmt.Sprintf("productos[%d]", i)
		if it.ProductID <= 0 {
			return nil, domain.NewValidationError(field+".producto_id", "es obligatorio")
		}
		if it.Quantity <= 0 {
			return nil, domain.NewValidationError(field+".cantidad", "debe ser mayor que cero")
		}
		if it.PerUnitDiscount.IsNegative() {
			return nil, domain.NewValidationError(field+".descuento_por_unidad", "no puede ser negativo")
		}
		mode, ok := entity.ParseSaleMode(it.SaleMode)
		if !ok {
			return nil, domain.NewValidationError(field+".tipo_venta", "debe ser Unidad o Quintal")
		}
		lines = append(lines, lineInput{
			productID: it.ProductID,
			quantity:  it.Quantity,
			discount:  it.PerUnitDiscount,
			mode:      mode,
		})
	}
	return lines, nil
}
