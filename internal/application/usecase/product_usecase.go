package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/billing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/pricing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
	"github.com/jeancarlo3213/ferrefactura-backend/pkg/logger"
)

// ProductUseCase CRUD del catálogo. Los reportes de ganancia leen precios y costos actuales,
// por eso cualquier cambio invalida el caché de reportes.
type ProductUseCase struct {
	repo        repository.ProductRepository
	invalidator billing.ReportInvalidator
	log         *logger.Logger
}

// NewProductUseCase construye el caso de uso. invalidator y log pueden ser nil.
func NewProductUseCase(repo repository.ProductRepository, invalidator billing.ReportInvalidator, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, invalidator: invalidator, log: log.Component("catalogo")}
}

func (uc *ProductUseCase) bump(ctx context.Context) {
	if uc.invalidator == nil {
		return
	}
	if err := uc.invalidator.Bump(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar caché de reportes")
	}
}

// Create crea un producto. El nombre es único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p := &entity.Product{}
	if err := applyProduct(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.bump(ctx)
	return toProductResponse(p), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update reemplaza los datos del producto; el stock solo cambia si viene distinto de cero.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	stock := p.Stock
	if err := applyProduct(p, in); err != nil {
		return nil, err
	}
	if in.Stock == 0 {
		p.Stock = stock
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.bump(ctx)
	return toProductResponse(p), nil
}

// Delete elimina el producto. Si ya fue facturado devuelve ErrInvalidInput.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.bump(ctx)
	return nil
}

func applyProduct(p *entity.Product, in dto.ProductRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.NewValidationError("nombre", "es obligatorio")
	}
	if in.Price.IsNegative() {
		return domain.NewValidationError("precio", "no puede ser negativo")
	}
	optional := []struct {
		field string
		value *decimal.Decimal
	}{
		{"precio_unidad", in.PricePerUnit},
		{"precio_quintal", in.PricePerHundredweight},
		{"costo_unidad", in.CostPerUnit},
		{"costo_quintal", in.CostPerHundredweight},
	}
	for _, o := range optional {
		if o.value != nil && o.value.IsNegative() {
			return domain.NewValidationError(o.field, "no puede ser negativo")
		}
	}
	if in.UnitsPerHundredweight != nil && *in.UnitsPerHundredweight <= 0 {
		return domain.NewValidationError("unidades_por_quintal", "debe ser mayor que cero")
	}
	p.Name = name
	p.Price = in.Price
	p.PricePerUnit = in.PricePerUnit
	p.PricePerHundredweight = in.PricePerHundredweight
	p.CostPerUnit = in.CostPerUnit
	p.CostPerHundredweight = in.CostPerHundredweight
	p.UnitsPerHundredweight = in.UnitsPerHundredweight
	p.Category = in.Category
	p.Stock = in.Stock
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Price:                 pricing.Round2(p.Price),
		PricePerUnit:          pricing.Round2Ptr(p.PricePerUnit),
		PricePerHundredweight: pricing.Round2Ptr(p.PricePerHundredweight),
		CostPerUnit:           pricing.Round2Ptr(p.CostPerUnit),
		CostPerHundredweight:  pricing.Round2Ptr(p.CostPerHundredweight),
		UnitsPerHundredweight: p.UnitsPerHundredweight,
		Category:              p.Category,
		Stock:                 p.Stock,
		CreatedAt:             p.CreatedAt,
	}
}
