package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

var (
	_ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)
	_ repository.DebtorRepository       = (*DebtorRepo)(nil)
	_ repository.DebtRecordRepository   = (*DebtRecordRepo)(nil)
	_ repository.DebtPaymentRepository  = (*DebtPaymentRepo)(nil)
	_ repository.PrintJobRepository     = (*PrintJobRepo)(nil)
)

type CashRegisterRepo struct{ base }

func NewCashRegisterRepository(s *Store) *CashRegisterRepo { return &CashRegisterRepo{base{s: s}} }

func (r *CashRegisterRepo) Create(_ context.Context, c *entity.CashRegister) error {
	return r.write(func(d *data) error {
		c.ID = d.next("caja_diaria")
		c.CreatedAt = r.clock()
		d.cash[c.ID] = *c
		return nil
	})
}

func (r *CashRegisterRepo) GetByID(_ context.Context, id int64) (*entity.CashRegister, error) {
	var out *entity.CashRegister
	r.read(func(d *data) {
		if c, ok := d.cash[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CashRegisterRepo) List(_ context.Context) ([]*entity.CashRegister, error) {
	var list []*entity.CashRegister
	r.read(func(d *data) {
		ids := sortedKeys(d.cash)
		slices.Reverse(ids)
		for _, id := range ids {
			c := d.cash[id]
			list = append(list, &c)
		}
	})
	return list, nil
}

func (r *CashRegisterRepo) Update(_ context.Context, c *entity.CashRegister) error {
	return r.write(func(d *data) error {
		old, ok := d.cash[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		c.CreatedAt = old.CreatedAt
		d.cash[c.ID] = *c
		return nil
	})
}

func (r *CashRegisterRepo) Delete(_ context.Context, id int64) error {
	return r.write(func(d *data) error {
		if _, ok := d.cash[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.cash, id)
		for pid, p := range d.debtPayments {
			if p.CashRegisterID == id {
				delete(d.debtPayments, pid)
			}
		}
		return nil
	})
}

type DebtorRepo struct{ base }

func NewDebtorRepository(s *Store) *DebtorRepo { return &DebtorRepo{base{s: s}} }

func (r *DebtorRepo) Create(_ context.Context, dt *entity.Debtor) error {
	return r.write(func(d *data) error {
		dt.ID = d.next("deudores")
		dt.RegisteredAt = r.clock()
		d.debtors[dt.ID] = *dt
		return nil
	})
}

func (r *DebtorRepo) GetByID(_ context.Context, id int64) (*entity.Debtor, error) {
	var out *entity.Debtor
	r.read(func(d *data) {
		if dt, ok := d.debtors[id]; ok {
			out = &dt
		}
	})
	return out, nil
}

func (r *DebtorRepo) List(_ context.Context) ([]*entity.Debtor, error) {
	var list []*entity.Debtor
	r.read(func(d *data) {
		for _, id := range sortedKeys(d.debtors) {
			dt := d.debtors[id]
			list = append(list, &dt)
		}
	})
	return list, nil
}

func (r *DebtorRepo) Update(_ context.Context, dt *entity.Debtor) error {
	return r.write(func(d *data) error {
		old, ok := d.debtors[dt.ID]
		if !ok {
			return domain.ErrNotFound
		}
		dt.RegisteredAt = old.RegisteredAt
		d.debtors[dt.ID] = *dt
		return nil
	})
}

func (r *DebtorRepo) Delete(_ context.Context, id int64) error {
	return r.write(func(d *data) error {
		if _, ok := d.debtors[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.debtors, id)
		for rid, rec := range d.debtRecords {
			if rec.DebtorID == id {
				delete(d.debtRecords, rid)
			}
		}
		for pid, p := range d.debtPayments {
			if p.DebtorID == id {
				delete(d.debtPayments, pid)
			}
		}
		return nil
	})
}

type DebtRecordRepo struct{ base }

func NewDebtRecordRepository(s *Store) *DebtRecordRepo { return &DebtRecordRepo{base{s: s}} }

func withDebtorName(d *data, rec entity.DebtRecord) *entity.DebtRecord {
	rec.DebtorName = d.debtors[rec.DebtorID].Name
	return &rec
}

func (r *DebtRecordRepo) Create(_ context.Context, rec *entity.DebtRecord) error {
	return r.write(func(d *data) error {
		dt, ok := d.debtors[rec.DebtorID]
		if !ok {
			return fmt.Errorf("%w: deudor %d", domain.ErrNotFound, rec.DebtorID)
		}
		rec.ID = d.next("registros_deudas")
		rec.CreatedAt = r.clock()
		rec.DebtorName = dt.Name
		d.debtRecords[rec.ID] = *rec
		return nil
	})
}

func (r *DebtRecordRepo) GetByID(_ context.Context, id int64) (*entity.DebtRecord, error) {
	var out *entity.DebtRecord
	r.read(func(d *data) {
		if rec, ok := d.debtRecords[id]; ok {
			out = withDebtorName(d, rec)
		}
	})
	return out, nil
}

func (r *DebtRecordRepo) List(_ context.Context) ([]*entity.DebtRecord, error) {
	var list []*entity.DebtRecord
	r.read(func(d *data) {
		ids := sortedKeys(d.debtRecords)
		slices.Reverse(ids)
		for _, id := range ids {
			list = append(list, withDebtorName(d, d.debtRecords[id]))
		}
	})
	return list, nil
}

func (r *DebtRecordRepo) Update(_ context.Context, rec *entity.DebtRecord) error {
	return r.write(func(d *data) error {
		old, ok := d.debtRecords[rec.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if _, ok := d.debtors[rec.DebtorID]; !ok {
			return fmt.Errorf("%w: deudor %d", domain.ErrNotFound, rec.DebtorID)
		}
		rec.CreatedAt = old.CreatedAt
		d.debtRecords[rec.ID] = *rec
		return nil
	})
}

func (r *DebtRecordRepo) Delete(_ context.Context, id int64) error {
	return r.write(func(d *data) error {
		if _, ok := d.debtRecords[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.debtRecords, id)
		return nil
	})
}

type DebtPaymentRepo struct{ base }

func NewDebtPaymentRepository(s *Store) *DebtPaymentRepo { return &DebtPaymentRepo{base{s: s}} }

func checkPaymentRefs(d *data, p *entity.DebtPayment) error {
	if _, ok := d.debtors[p.DebtorID]; !ok {
		return fmt.Errorf("%w: deudor %d", domain.ErrNotFound, p.DebtorID)
	}
	if _, ok := d.cash[p.CashRegisterID]; !ok {
		return fmt.Errorf("%w: caja %d", domain.ErrNotFound, p.CashRegisterID)
	}
	return nil
}

func (r *DebtPaymentRepo) Create(_ context.Context, p *entity.DebtPayment) error {
	return r.write(func(d *data) error {
		if err := checkPaymentRefs(d, p); err != nil {
			return err
		}
		p.ID = d.next("pagos_deudas")
		p.PaidAt = r.clock()
		p.DebtorName = d.debtors[p.DebtorID].Name
		d.debtPayments[p.ID] = *p
		return nil
	})
}

func (r *DebtPaymentRepo) GetByID(_ context.Context, id int64) (*entity.DebtPayment, error) {
	var out *entity.DebtPayment
	r.read(func(d *data) {
		if p, ok := d.debtPayments[id]; ok {
			p.DebtorName = d.debtors[p.DebtorID].Name
			out = &p
		}
	})
	return out, nil
}

func (r *DebtPaymentRepo) List(_ context.Context) ([]*entity.DebtPayment, error) {
	var list []*entity.DebtPayment
	r.read(func(d *data) {
		ids := sortedKeys(d.debtPayments)
		slices.Reverse(ids)
		for _, id := range ids {
			p := d.debtPayments[id]
			p.DebtorName = d.debtors[p.DebtorID].Name
			list = append(list, &p)
		}
	})
	return list, nil
}

func (r *DebtPaymentRepo) Update(_ context.Context, p *entity.DebtPayment) error {
	return r.write(func(d *data) error {
		old, ok := d.debtPayments[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkPaymentRefs(d, p); err != nil {
			return err
		}
		p.PaidAt = old.PaidAt
		d.debtPayments[p.ID] = *p
		return nil
	})
}

func (r *DebtPaymentRepo) Delete(_ context.Context, id int64) error {
	return r.write(func(d *data) error {
		if _, ok := d.debtPayments[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.debtPayments, id)
		return nil
	})
}

// PrintJobRepo cola de impresión en memoria.
type PrintJobRepo struct{ base }

func NewPrintJobRepository(s *Store) *PrintJobRepo { return &PrintJobRepo{base{s: s}} }

func (r *PrintJobRepo) Create(_ context.Context, job *entity.PrintJob) error {
	return r.write(func(d *data) error {
		job.ID = d.next("print_jobs")
		job.Printed = false
		job.CreatedAt = r.clock()
		d.printJobs[job.ID] = *job
		return nil
	})
}

func (r *PrintJobRepo) ListPending(_ context.Context) ([]*entity.PrintJob, error) {
	var list []*entity.PrintJob
	r.read(func(d *data) {
		for _, id := range sortedKeys(d.printJobs) {
			if j := d.printJobs[id]; !j.Printed {
				list = append(list, &j)
			}
		}
	})
	return list, nil
}

func (r *PrintJobRepo) MarkPrinted(_ context.Context, id int64) error {
	return r.write(func(d *data) error {
		j, ok := d.printJobs[id]
		if !ok {
			return domain.ErrNotFound
		}
		j.Printed = true
		d.printJobs[id] = j
		return nil
	})
}
