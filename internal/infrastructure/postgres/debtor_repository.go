package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

var (
	_ repository.DebtorRepository      = (*DebtorRepo)(nil)
	_ repository.DebtRecordRepository  = (*DebtRecordRepo)(nil)
	_ repository.DebtPaymentRepository = (*DebtPaymentRepo)(nil)
)

// DebtorRepo deudores.
type DebtorRepo struct {
	q Querier
}

func NewDebtorRepository(q Querier) *DebtorRepo {
	return &DebtorRepo{q: q}
}

func (r *DebtorRepo) Create(ctx context.Context, d *entity.Debtor) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO deudores (nombre, estado) VALUES ($1, $2) RETURNING id, fecha_registro`,
		d.Name, d.Status,
	).Scan(&d.ID, &d.RegisteredAt)
	if err != nil {
		return fmt.Errorf("insert deudor: %w", err)
	}
	return nil
}

func (r *DebtorRepo) GetByID(ctx context.Context, id int64) (*entity.Debtor, error) {
	var d entity.Debtor
	err := r.q.QueryRow(ctx, `SELECT id, nombre, fecha_registro, estado FROM deudores WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.RegisteredAt, &d.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deudor: %w", err)
	}
	return &d, nil
}

func (r *DebtorRepo) List(ctx context.Context) ([]*entity.Debtor, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, fecha_registro, estado FROM deudores ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list deudores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Debtor
	for rows.Next() {
		var d entity.Debtor
		if err := rows.Scan(&d.ID, &d.Name, &d.RegisteredAt, &d.Status); err != nil {
			return nil, fmt.Errorf("scan deudor: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *DebtorRepo) Update(ctx context.Context, d *entity.Debtor) error {
	cmd, err := r.q.Exec(ctx, `UPDATE deudores SET nombre = $2, estado = $3 WHERE id = $1`, d.ID, d.Name, d.Status)
	if err != nil {
		return fmt.Errorf("update deudor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el deudor junto con sus registros y abonos (cascada).
func (r *DebtorRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "deudores", id)
}

// DebtRecordRepo cargos de deudores.
type DebtRecordRepo struct {
	q Querier
}

func NewDebtRecordRepository(q Querier) *DebtRecordRepo {
	return &DebtRecordRepo{q: q}
}

const debtRecordSelect = `
	SELECT r.id, r.deudor_id, d.nombre, r.fecha_creacion, r.descripcion, r.cantidad, r.comentario
	FROM registros_deudas r JOIN deudores d ON d.id = r.deudor_id`

func scanDebtRecord(row pgx.Row) (*entity.DebtRecord, error) {
	var rec entity.DebtRecord
	var comment *string
	if err := row.Scan(&rec.ID, &rec.DebtorID, &rec.DebtorName, &rec.CreatedAt, &rec.Description,
		&rec.Amount, &comment); err != nil {
		return nil, err
	}
	rec.Comment = derefStr(comment)
	return &rec, nil
}

func (r *DebtRecordRepo) Create(ctx context.Context, rec *entity.DebtRecord) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO registros_deudas (deudor_id, descripcion, cantidad, comentario)
		VALUES ($1, $2, $3, $4) RETURNING id, fecha_creacion`,
		rec.DebtorID, rec.Description, rec.Amount, nullIfEmpty(rec.Comment),
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: deudor %d", domain.ErrNotFound, rec.DebtorID)
		}
		return fmt.Errorf("insert registro deuda: %w", err)
	}
	return nil
}

func (r *DebtRecordRepo) GetByID(ctx context.Context, id int64) (*entity.DebtRecord, error) {
	rec, err := scanDebtRecord(r.q.QueryRow(ctx, debtRecordSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get registro deuda: %w", err)
	}
	return rec, nil
}

func (r *DebtRecordRepo) List(ctx context.Context) ([]*entity.DebtRecord, error) {
	rows, err := r.q.Query(ctx, debtRecordSelect+` ORDER BY r.fecha_creacion DESC, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list registros deudas: %w", err)
	}
	defer rows.Close()
	var list []*entity.DebtRecord
	for rows.Next() {
		rec, err := scanDebtRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registro deuda: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func (r *DebtRecordRepo) Update(ctx context.Context, rec *entity.DebtRecord) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE registros_deudas SET deudor_id = $2, descripcion = $3, cantidad = $4, comentario = $5
		WHERE id = $1`,
		rec.ID, rec.DebtorID, rec.Description, rec.Amount, nullIfEmpty(rec.Comment),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: deudor %d", domain.ErrNotFound, rec.DebtorID)
		}
		return fmt.Errorf("update registro deuda: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DebtRecordRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "registros_deudas", id)
}

// DebtPaymentRepo abonos de deudores.
type DebtPaymentRepo struct {
	q Querier
}

func NewDebtPaymentRepository(q Querier) *DebtPaymentRepo {
	return &DebtPaymentRepo{q: q}
}

const debtPaymentSelect = `
	SELECT p.id, p.deudor_id, d.nombre, p.fecha_pago, p.cantidad_pagada, p.caja_id, p.comentario
	FROM pagos_deudas p JOIN deudores d ON d.id = p.deudor_id`

func scanDebtPayment(row pgx.Row) (*entity.DebtPayment, error) {
	var p entity.DebtPayment
	var comment *string
	if err := row.Scan(&p.ID, &p.DebtorID, &p.DebtorName, &p.PaidAt, &p.Amount, &p.CashRegisterID, &comment); err != nil {
		return nil, err
	}
	p.Comment = derefStr(comment)
	return &p, nil
}

func (r *DebtPaymentRepo) Create(ctx context.Context, p *entity.DebtPayment) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO pagos_deudas (deudor_id, cantidad_pagada, caja_id, comentario)
		VALUES ($1, $2, $3, $4) RETURNING id, fecha_pago`,
		p.DebtorID, p.Amount, p.CashRegisterID, nullIfEmpty(p.Comment),
	).Scan(&p.ID, &p.PaidAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: deudor %d o caja %d", domain.ErrNotFound, p.DebtorID, p.CashRegisterID)
		}
		return fmt.Errorf("insert pago deuda: %w", err)
	}
	return nil
}

func (r *DebtPaymentRepo) GetByID(ctx context.Context, id int64) (*entity.DebtPayment, error) {
	p, err := scanDebtPayment(r.q.QueryRow(ctx, debtPaymentSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pago deuda: %w", err)
	}
	return p, nil
}

func (r *DebtPaymentRepo) List(ctx context.Context) ([]*entity.DebtPayment, error) {
	rows, err := r.q.Query(ctx, debtPaymentSelect+` ORDER BY p.fecha_pago DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list pagos deudas: %w", err)
	}
	defer rows.Close()
	var list []*entity.DebtPayment
	for rows.Next() {
		p, err := scanDebtPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pago deuda: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *DebtPaymentRepo) Update(ctx context.Context, p *entity.DebtPayment) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE pagos_deudas SET deudor_id = $2, cantidad_pagada = $3, caja_id = $4, comentario = $5
		WHERE id = $1`,
		p.ID, p.DebtorID, p.Amount, p.CashRegisterID, nullIfEmpty(p.Comment),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: deudor %d o caja %d", domain.ErrNotFound, p.DebtorID, p.CashRegisterID)
		}
		return fmt.Errorf("update pago deuda: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DebtPaymentRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "pagos_deudas", id)
}
