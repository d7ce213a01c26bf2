package billing

import (
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/pricing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

// ToInvoiceResponse arma la respuesta; los montos se redondean a 2 decimales solo aquí.
func ToInvoiceResponse(inv *entity.Invoice, discounts []*entity.Discount) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		CreatedAt:      inv.CreatedAt,
		UserID:         inv.UserID,
		CustomerName:   inv.CustomerName,
		DeliveryDate:   dto.DateFrom(inv.DeliveryDate),
		ShippingCost:   pricing.Round2(inv.ShippingCost),
		DescuentoTotal: pricing.Round2(inv.DescuentoTotal),
		Subtotal:       pricing.Round2(inv.Subtotal()),
		Total:          pricing.Round2(inv.Total()),
		Details:        make([]dto.InvoiceLineResponse, 0, len(inv.Lines)),
	}
	for _, l := range inv.Lines {
		resp.Details = append(resp.Details, dto.InvoiceLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: pricing.Round2(l.UnitPrice),
			SaleMode:  string(l.SaleMode),
			Subtotal:  pricing.Round2(l.Subtotal()),
		})
	}
	for _, d := range discounts {
		resp.Discounts = append(resp.Discounts, ToDiscountResponse(d))
	}
	return resp
}

// ToDiscountResponse convierte un registro de la bitácora.
func ToDiscountResponse(d *entity.Discount) dto.DiscountResponse {
	return dto.DiscountResponse{
		ID:        d.ID,
		InvoiceID: d.InvoiceID,
		Kind:      d.Kind,
		Amount:    pricing.Round2(d.Amount),
		ProductID: d.ProductID,
	}
}

func toLineDetail(v *repository.InvoiceLineView) dto.InvoiceLineDetailResponse {
	return dto.InvoiceLineDetailResponse{
		ID:                    v.ID,
		InvoiceID:             v.InvoiceID,
		ProductID:             v.ProductID,
		ProductName:           v.ProductName,
		Category:              v.Category,
		PricePerUnit:          pricing.Round2Ptr(v.PricePerUnit),
		PricePerHundredweight: pricing.Round2Ptr(v.PricePerHundredweight),
		Quantity:              v.Quantity,
		UnitPrice:             pricing.Round2(v.UnitPrice),
		SaleMode:              string(v.SaleMode),
		Subtotal:              pricing.Round2(v.Subtotal()),
	}
}

func toFlatRow(v *repository.InvoiceLineView) dto.FlatInvoiceRow {
	return dto.FlatInvoiceRow{
		InvoiceID:    v.InvoiceID,
		CreatedAt:    v.InvoiceCreatedAt,
		CustomerName: v.CustomerName,
		LineID:       v.ID,
		ProductID:    v.ProductID,
		ProductName:  v.ProductName,
		Quantity:     v.Quantity,
		UnitPrice:    pricing.Round2(v.UnitPrice),
		SaleMode:     string(v.SaleMode),
		Subtotal:     pricing.Round2(v.Subtotal()),
	}
}
