package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/pricing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

// CashbookUseCase cierres de caja, deudores, cargos y abonos.
type CashbookUseCase struct {
	cashRepo    repository.CashRegisterRepository
	debtorRepo  repository.DebtorRepository
	recordRepo  repository.DebtRecordRepository
	paymentRepo repository.DebtPaymentRepository
}

func NewCashbookUseCase(
	cashRepo repository.CashRegisterRepository,
	debtorRepo repository.DebtorRepository,
	recordRepo repository.DebtRecordRepository,
	paymentRepo repository.DebtPaymentRepository,
) *CashbookUseCase {
	return &CashbookUseCase{cashRepo: cashRepo, debtorRepo: debtorRepo, recordRepo: recordRepo, paymentRepo: paymentRepo}
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.NewValidationError(field, "no puede ser negativo")
	}
	return nil
}

// ── Caja diaria ──────────────────────────────────────────────────────────────

func cashFromRequest(c *entity.CashRegister, in dto.CashRegisterRequest) error {
	for _, f := range []struct {
		name string
		v    decimal.Decimal
	}{
		{"cuenta_banco", in.BankAccount},
		{"efectivo", in.Cash},
		{"sencillo", in.Change},
		{"gastos", in.Expenses},
		{"ingreso_extra", in.ExtraIncome},
	} {
		if err := nonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	c.BankAccount = in.BankAccount
	c.Cash = in.Cash
	c.Change = in.Change
	c.Expenses = in.Expenses
	c.ExtraIncome = in.ExtraIncome
	c.Comment = in.Comment
	c.ComputeTotals()
	return nil
}

func (uc *CashbookUseCase) CreateCashRegister(ctx context.Context, in dto.CashRegisterRequest) (*dto.CashRegisterResponse, error) {
	c := &entity.CashRegister{}
	if err := cashFromRequest(c, in); err != nil {
		return nil, err
	}
	if err := uc.cashRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCashResponse(c), nil
}

func (uc *CashbookUseCase) GetCashRegister(ctx context.Context, id int64) (*dto.CashRegisterResponse, error) {
	c, err := uc.cashRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCashResponse(c), nil
}

func (uc *CashbookUseCase) ListCashRegisters(ctx context.Context) ([]dto.CashRegisterResponse, error) {
	list, err := uc.cashRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashRegisterResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCashResponse(c))
	}
	return out, nil
}

// UpdateCashRegister reemplaza los montos y recalcula los totales.
func (uc *CashbookUseCase) UpdateCashRegister(ctx context.Context, id int64, in dto.CashRegisterRequest) (*dto.CashRegisterResponse, error) {
	c := &entity.CashRegister{ID: id}
	if err := cashFromRequest(c, in); err != nil {
		return nil, err
	}
	if err := uc.cashRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return uc.GetCashRegister(ctx, id)
}

func (uc *CashbookUseCase) DeleteCashRegister(ctx context.Context, id int64) error {
	return uc.cashRepo.Delete(ctx, id)
}

func toCashResponse(c *entity.CashRegister) *dto.CashRegisterResponse {
	return &dto.CashRegisterResponse{
		ID:            c.ID,
		CreatedAt:     c.CreatedAt,
		BankAccount:   pricing.Round2(c.BankAccount),
		Cash:          pricing.Round2(c.Cash),
		Change:        pricing.Round2(c.Change),
		Expenses:      pricing.Round2(c.Expenses),
		ExtraIncome:   pricing.Round2(c.ExtraIncome),
		Comment:       c.Comment,
		Total:         pricing.Round2(c.Total),
		TotalSinDeuda: pricing.Round2(c.TotalSinDeuda),
		TotalConDeuda: pricing.Round2(c.TotalConDeuda),
	}
}

// ── Deudores ─────────────────────────────────────────────────────────────────

func debtorFromRequest(d *entity.Debtor, in dto.DebtorRequest) error {
	if in.Name == "" {
		return domain.NewValidationError("nombre", "es obligatorio")
	}
	switch in.Status {
	case "":
		in.Status = entity.DebtorActive
	case entity.DebtorActive, entity.DebtorPaid:
	default:
		return domain.NewValidationError("estado", "debe ser Activo o Pagado")
	}
	d.Name = in.Name
	d.Status = in.Status
	return nil
}

func (uc *CashbookUseCase) CreateDebtor(ctx context.Context, in dto.DebtorRequest) (*dto.DebtorResponse, error) {
	d := &entity.Debtor{}
	if err := debtorFromRequest(d, in); err != nil {
		return nil, err
	}
	if err := uc.debtorRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDebtorResponse(d), nil
}

func (uc *CashbookUseCase) GetDebtor(ctx context.Context, id int64) (*dto.DebtorResponse, error) {
	d, err := uc.debtorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return toDebtorResponse(d), nil
}

func (uc *CashbookUseCase) ListDebtors(ctx context.Context) ([]dto.DebtorResponse, error) {
	list, err := uc.debtorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DebtorResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDebtorResponse(d))
	}
	return out, nil
}

func (uc *CashbookUseCase) UpdateDebtor(ctx context.Context, id int64, in dto.DebtorRequest) (*dto.DebtorResponse, error) {
	d := &entity.Debtor{ID: id}
	if err := debtorFromRequest(d, in); err != nil {
		return nil, err
	}
	if err := uc.debtorRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return uc.GetDebtor(ctx, id)
}

// DeleteDebtor elimina el deudor junto con sus cargos y abonos.
func (uc *CashbookUseCase) DeleteDebtor(ctx context.Context, id int64) error {
	return uc.debtorRepo.Delete(ctx, id)
}

func toDebtorResponse(d *entity.Debtor) *dto.DebtorResponse {
	return &dto.DebtorResponse{ID: d.ID, Name: d.Name, RegisteredAt: d.RegisteredAt, Status: d.Status}
}

// ── Cargos ───────────────────────────────────────────────────────────────────

func recordFromRequest(r *entity.DebtRecord, in dto.DebtRecordRequest) error {
	if in.DebtorID <= 0 {
		return domain.NewValidationError("deudor", "es obligatorio")
	}
	if in.Description == "" {
		return domain.NewValidationError("descripcion", "es obligatoria")
	}
	if err := nonNegative("cantidad", in.Amount); err != nil {
		return err
	}
	r.DebtorID = in.DebtorID
	r.Description = in.Description
	r.Amount = in.Amount
	r.Comment = in.Comment
	return nil
}

func (uc *CashbookUseCase) CreateDebtRecord(ctx context.Context, in dto.DebtRecordRequest) (*dto.DebtRecordResponse, error) {
	r := &entity.DebtRecord{}
	if err := recordFromRequest(r, in); err != nil {
		return nil, err
	}
	if err := uc.recordRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return uc.GetDebtRecord(ctx, r.ID)
}

func (uc *CashbookUseCase) GetDebtRecord(ctx context.Context, id int64) (*dto.DebtRecordResponse, error) {
	r, err := uc.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toRecordResponse(r), nil
}

func (uc *CashbookUseCase) ListDebtRecords(ctx context.Context) ([]dto.DebtRecordResponse, error) {
	list, err := uc.recordRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DebtRecordResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRecordResponse(r))
	}
	return out, nil
}

func (uc *CashbookUseCase) UpdateDebtRecord(ctx context.Context, id int64, in dto.DebtRecordRequest) (*dto.DebtRecordResponse, error) {
	r := &entity.DebtRecord{ID: id}
	if err := recordFromRequest(r, in); err != nil {
		return nil, err
	}
	if err := uc.recordRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return uc.GetDebtRecord(ctx, id)
}

func (uc *CashbookUseCase) DeleteDebtRecord(ctx context.Context, id int64) error {
	return uc.recordRepo.Delete(ctx, id)
}

func toRecordResponse(r *entity.DebtRecord) *dto.DebtRecordResponse {
	return &dto.DebtRecordResponse{
		ID:          r.ID,
		DebtorID:    r.DebtorID,
		DebtorName:  r.DebtorName,
		CreatedAt:   r.CreatedAt,
		Description: r.Description,
		Amount:      pricing.Round2(r.Amount),
		Comment:     r.Comment,
	}
}

// ── Abonos ───────────────────────────────────────────────────────────────────

func paymentFromRequest(p *entity.DebtPayment, in dto.DebtPaymentRequest) error {
	if in.DebtorID <= 0 {
		return domain.NewValidationError("deudor", "es obligatorio")
	}
	if in.CashRegisterID <= 0 {
		return domain.NewValidationError("caja", "es obligatoria")
	}
	if err := nonNegative("cantidad_pagada", in.Amount); err != nil {
		return err
	}
	p.DebtorID = in.DebtorID
	p.CashRegisterID = in.CashRegisterID
	p.Amount = in.Amount
	p.Comment = in.Comment
	return nil
}

func (uc *CashbookUseCase) CreateDebtPayment(ctx context.Context, in dto.DebtPaymentRequest) (*dto.DebtPaymentResponse, error) {
	p := &entity.DebtPayment{}
	if err := paymentFromRequest(p, in); err != nil {
		return nil, err
	}
	if err := uc.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetDebtPayment(ctx, p.ID)
}

func (uc *CashbookUseCase) GetDebtPayment(ctx context.Context, id int64) (*dto.DebtPaymentResponse, error) {
	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPaymentResponse(p), nil
}

func (uc *CashbookUseCase) ListDebtPayments(ctx context.Context) ([]dto.DebtPaymentResponse, error) {
	list, err := uc.paymentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DebtPaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPaymentResponse(p))
	}
	return out, nil
}

func (uc *CashbookUseCase) UpdateDebtPayment(ctx context.Context, id int64, in dto.DebtPaymentRequest) (*dto.DebtPaymentResponse, error) {
	p := &entity.DebtPayment{ID: id}
	if err := paymentFromRequest(p, in); err != nil {
		return nil, err
	}
	if err := uc.paymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetDebtPayment(ctx, id)
}

func (uc *CashbookUseCase) DeleteDebtPayment(ctx context.Context, id int64) error {
	return uc.paymentRepo.Delete(ctx, id)
}

func toPaymentResponse(p *entity.DebtPayment) *dto.DebtPaymentResponse {
	return &dto.DebtPaymentResponse{
		ID:             p.ID,
		DebtorID:       p.DebtorID,
		DebtorName:     p.DebtorName,
		PaidAt:         p.PaidAt,
		Amount:         pricing.Round2(p.Amount),
		CashRegisterID: p.CashRegisterID,
		Comment:        p.Comment,
	}
}
