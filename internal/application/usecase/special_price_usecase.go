package usecase

import (
	"context"
	"fmt"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/pricing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

// SpecialPriceUseCase precios preferenciales por tipo de cliente. No intervienen en la facturación.
type SpecialPriceUseCase struct {
	repo        repository.SpecialPriceRepository
	productRepo repository.ProductRepository
}

func NewSpecialPriceUseCase(repo repository.SpecialPriceRepository, productRepo repository.ProductRepository) *SpecialPriceUseCase {
	return &SpecialPriceUseCase{repo: repo, productRepo: productRepo}
}

func (uc *SpecialPriceUseCase) validate(ctx context.Context, in dto.SpecialPriceRequest) error {
	if !in.Price.IsPositive() {
		return domain.NewValidationError("precio", "debe ser mayor que cero")
	}
	if in.CustomerTier == "" {
		return domain.NewValidationError("tipo_cliente", "es obligatorio")
	}
	p, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.ProductID)
	}
	return nil
}

func (uc *SpecialPriceUseCase) Create(ctx context.Context, in dto.SpecialPriceRequest) (*dto.SpecialPriceResponse, error) {
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	sp := &entity.SpecialPrice{ProductID: in.ProductID, CustomerTier: in.CustomerTier, Price: in.Price}
	if err := uc.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return toSpecialPriceResponse(sp), nil
}

func (uc *SpecialPriceUseCase) GetByID(ctx context.Context, id int64) (*dto.SpecialPriceResponse, error) {
	sp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, domain.ErrNotFound
	}
	return toSpecialPriceResponse(sp), nil
}

func (uc *SpecialPriceUseCase) List(ctx context.Context) ([]dto.SpecialPriceResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SpecialPriceResponse, 0, len(list))
	for _, sp := range list {
		out = append(out, *toSpecialPriceResponse(sp))
	}
	return out, nil
}

func (uc *SpecialPriceUseCase) Update(ctx context.Context, id int64, in dto.SpecialPriceRequest) (*dto.SpecialPriceResponse, error) {
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	sp := &entity.SpecialPrice{ID: id, ProductID: in.ProductID, CustomerTier: in.CustomerTier, Price: in.Price}
	if err := uc.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return toSpecialPriceResponse(sp), nil
}

func (uc *SpecialPriceUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toSpecialPriceResponse(sp *entity.SpecialPrice) *dto.SpecialPriceResponse {
	return &dto.SpecialPriceResponse{
		ID:           sp.ID,
		ProductID:    sp.ProductID,
		CustomerTier: sp.CustomerTier,
		Price:        pricing.Round2(sp.Price),
	}
}
