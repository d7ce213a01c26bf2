package repository

import (
	"context"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
)

// CashRegisterRepository cierres de caja diarios.
type CashRegisterRepository interface {
	Create(ctx context.Context, c *entity.CashRegister) error
	GetByID(ctx context.Context, id int64) (*entity.CashRegister, error)
	List(ctx context.Context) ([]*entity.CashRegister, error)
	Update(ctx context.Context, c *entity.CashRegister) error
	Delete(ctx context.Context, id int64) error
}

// DebtorRepository deudores.
type DebtorRepository interface {
	Create(ctx context.Context, d *entity.Debtor) error
	GetByID(ctx context.Context, id int64) (*entity.Debtor, error)
	List(ctx context.Context) ([]*entity.Debtor, error)
	Update(ctx context.Context, d *entity.Debtor) error
	Delete(ctx context.Context, id int64) error
}

// DebtRecordRepository cargos anotados a deudores. Los listados traen el nombre del deudor.
type DebtRecordRepository interface {
	Create(ctx context.Context, r *entity.DebtRecord) error
	GetByID(ctx context.Context, id int64) (*entity.DebtRecord, error)
	List(ctx context.Context) ([]*entity.DebtRecord, error)
	Update(ctx context.Context, r *entity.DebtRecord) error
	Delete(ctx context.Context, id int64) error
}

// DebtPaymentRepository abonos de deudores.
type DebtPaymentRepository interface {
	Create(ctx context.Context, p *entity.DebtPayment) error
	GetByID(ctx context.Context, id int64) (*entity.DebtPayment, error)
	List(ctx context.Context) ([]*entity.DebtPayment, error)
	Update(ctx context.Context, p *entity.DebtPayment) error
	Delete(ctx context.Context, id int64) error
}

// PrintJobRepository cola de impresión.
type PrintJobRepository interface {
	Create(ctx context.Context, job *entity.PrintJob) error
	ListPending(ctx context.Context) ([]*entity.PrintJob, error)
	MarkPrinted(ctx context.Context, id int64) error
}
