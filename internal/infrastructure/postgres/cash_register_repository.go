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

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

// CashRegisterRepo cierres de caja (tabla caja_diaria). Los totales llegan ya calculados desde el caso de uso.
type CashRegisterRepo struct {
	q Querier
}

func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

const cashColumns = `id, fecha_creacion, cuenta_banco, efectivo, sencillo, gastos, ingreso_extra, comentario,
	total, total_sin_deuda, total_con_deuda`

func scanCashRegister(row pgx.Row) (*entity.CashRegister, error) {
	var c entity.CashRegister
	var comment *string
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.BankAccount, &c.Cash, &c.Change, &c.Expenses, &c.ExtraIncome,
		&comment, &c.Total, &c.TotalSinDeuda, &c.TotalConDeuda); err != nil {
		return nil, err
	}
	c.Comment = derefStr(comment)
	return &c, nil
}

func (r *CashRegisterRepo) Create(ctx context.Context, c *entity.CashRegister) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO caja_diaria (cuenta_banco, efectivo, sencillo, gastos, ingreso_extra, comentario,
			total, total_sin_deuda, total_con_deuda)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, fecha_creacion`,
		c.BankAccount, c.Cash, c.Change, c.Expenses, c.ExtraIncome, nullIfEmpty(c.Comment),
		c.Total, c.TotalSinDeuda, c.TotalConDeuda,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert caja diaria: %w", err)
	}
	return nil
}

func (r *CashRegisterRepo) GetByID(ctx context.Context, id int64) (*entity.CashRegister, error) {
	c, err := scanCashRegister(r.q.QueryRow(ctx, `SELECT `+cashColumns+` FROM caja_diaria WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get caja diaria: %w", err)
	}
	return c, nil
}

// List cierres más recientes primero.
func (r *CashRegisterRepo) List(ctx context.Context) ([]*entity.CashRegister, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cashColumns+` FROM caja_diaria ORDER BY fecha_creacion DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list caja diaria: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashRegister
	for rows.Next() {
		c, err := scanCashRegister(rows)
		if err != nil {
			return nil, fmt.Errorf("scan caja diaria: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CashRegisterRepo) Update(ctx context.Context, c *entity.CashRegister) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE caja_diaria SET cuenta_banco = $2, efectivo = $3, sencillo = $4, gastos = $5, ingreso_extra = $6,
			comentario = $7, total = $8, total_sin_deuda = $9, total_con_deuda = $10
		WHERE id = $1`,
		c.ID, c.BankAccount, c.Cash, c.Change, c.Expenses, c.ExtraIncome, nullIfEmpty(c.Comment),
		c.Total, c.TotalSinDeuda, c.TotalConDeuda,
	)
	if err != nil {
		return fmt.Errorf("update caja diaria: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el cierre; los abonos asentados en él caen en cascada.
func (r *CashRegisterRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "caja_diaria", id)
}
