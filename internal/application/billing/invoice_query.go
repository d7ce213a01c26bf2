package billing

import (
	"context"
	"fmt"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
	"github.com/jeancarlo3213/ferrefactura-backend/pkg/logger"
)

// InvoiceUseCase consultas y borrado de facturas ya creadas. Las líneas no se editan.
type InvoiceUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	discountRepo repository.DiscountRepository
	invalidator  ReportInvalidator
	log          *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso. invalidator y log pueden ser nil.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	discountRepo repository.DiscountRepository,
	invalidator ReportInvalidator,
	log *logger.Logger,
) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		discountRepo: discountRepo,
		invalidator:  invalidator,
		log:          log.Component("facturacion"),
	}
}

// GetInvoice obtiene una factura con sus líneas, descuentos y totales.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	discounts, err := uc.discountRepo.ListByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv, discounts), nil
}

// ListInvoices lista facturas con sus líneas anidadas.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, page dto.PageRequest) ([]dto.InvoiceResponse, error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *ToInvoiceResponse(inv, nil))
	}
	return out, nil
}

// DeleteInvoice borra la factura (líneas y descuentos en cascada) e invalida los reportes.
func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, id int64) error {
	if err := uc.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	if uc.invalidator != nil {
		if err := uc.invalidator.Bump(ctx); err != nil {
			uc.log.Warn().Err(err).Int64("factura_id", id).Msg("no se pudo invalidar caché de reportes")
		}
	}
	return nil
}

// GetLine una línea con datos del producto.
func (uc *InvoiceUseCase) GetLine(ctx context.Context, id int64) (*dto.InvoiceLineDetailResponse, error) {
	v, err := uc.invoiceRepo.GetLine(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	resp := toLineDetail(v)
	return &resp, nil
}

// ListLines líneas con datos del producto.
func (uc *InvoiceUseCase) ListLines(ctx context.Context, page dto.PageRequest) ([]dto.InvoiceLineDetailResponse, error) {
	page.DefaultPage()
	views, err := uc.invoiceRepo.ListLines(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceLineDetailResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toLineDetail(v))
	}
	return out, nil
}

// ListFlat vista plana factura × línea.
func (uc *InvoiceUseCase) ListFlat(ctx context.Context, page dto.PageRequest) ([]dto.FlatInvoiceRow, error) {
	page.DefaultPage()
	views, err := uc.invoiceRepo.ListLines(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FlatInvoiceRow, 0, len(views))
	for _, v := range views {
		out = append(out, toFlatRow(v))
	}
	return out, nil
}

// ListDiscounts bitácora completa de descuentos.
func (uc *InvoiceUseCase) ListDiscounts(ctx context.Context) ([]dto.DiscountResponse, error) {
	list, err := uc.discountRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DiscountResponse, 0, len(list))
	for _, d := range list {
		out = append(out, ToDiscountResponse(d))
	}
	return out, nil
}

func (uc *InvoiceUseCase) GetDiscount(ctx context.Context, id int64) (*dto.DiscountResponse, error) {
	d, err := uc.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToDiscountResponse(d)
	return &resp, nil
}

// CreateDiscount alta manual en la bitácora (p. ej. un descuento Total aplicado en caja).
func (uc *InvoiceUseCase) CreateDiscount(ctx context.Context, in dto.DiscountRequest) (*dto.DiscountResponse, error) {
	if in.Amount.IsNegative() {
		return nil, domain.NewValidationError("cantidad", "no puede ser negativa")
	}
	if !entity.ValidDiscountKind(in.Kind) {
		return nil, domain.NewValidationError("tipo", "debe ser Total o Por unidad")
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, in.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: factura %d", domain.ErrNotFound, in.InvoiceID)
	}
	d := &entity.Discount{InvoiceID: in.InvoiceID, Kind: in.Kind, Amount: in.Amount, ProductID: in.ProductID}
	if err := uc.discountRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	resp := ToDiscountResponse(d)
	return &resp, nil
}

func (uc *InvoiceUseCase) DeleteDiscount(ctx context.Context, id int64) error {
	return uc.discountRepo.Delete(ctx, id)
}

// loadDocument carga lo necesario para imprimir la factura.
func loadDocument(ctx context.Context, invoiceRepo repository.InvoiceRepository, discountRepo repository.DiscountRepository,
	productRepo repository.ProductRepository, userRepo repository.UserRepository, id int64) (*InvoiceDocument, error) {
	inv, err := invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	discounts, err := discountRepo.ListByInvoice(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener descuentos: %w", err)
	}
	doc := &InvoiceDocument{Invoice: inv, Discounts: discounts, ProductNames: make(map[int64]string)}
	for _, l := range inv.Lines {
		if _, ok := doc.ProductNames[l.ProductID]; ok {
			continue
		}
		if p, pErr := productRepo.GetByID(ctx, l.ProductID); pErr == nil && p != nil {
			doc.ProductNames[l.ProductID] = p.Name
		}
	}
	if userRepo != nil {
		if u, uErr := userRepo.GetByID(ctx, inv.UserID); uErr == nil && u != nil {
			doc.IssuedBy = u.Name
			if doc.IssuedBy == "" {
				doc.IssuedBy = u.Username
			}
		}
	}
	return doc, nil
}
