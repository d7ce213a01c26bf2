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

var _ repository.DiscountRepository = (*DiscountRepo)(nil)

// DiscountRepo bitácora de descuentos.
type DiscountRepo struct {
	q Querier
}

func NewDiscountRepository(q Querier) *DiscountRepo {
	return &DiscountRepo{q: q}
}

const discountColumns = `id, factura_id, tipo, cantidad, producto_id`

func scanDiscount(row pgx.Row) (*entity.Discount, error) {
	var d entity.Discount
	var kind *string
	if err := row.Scan(&d.ID, &d.InvoiceID, &kind, &d.Amount, &d.ProductID); err != nil {
		return nil, err
	}
	d.Kind = derefStr(kind)
	return &d, nil
}

func (r *DiscountRepo) Create(ctx context.Context, d *entity.Discount) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO descuentos (factura_id, tipo, cantidad, producto_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		d.InvoiceID, nullIfEmpty(d.Kind), d.Amount, d.ProductID,
	).Scan(&d.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: factura o producto del descuento", domain.ErrNotFound)
		}
		return fmt.Errorf("insert descuento: %w", err)
	}
	return nil
}

func (r *DiscountRepo) GetByID(ctx context.Context, id int64) (*entity.Discount, error) {
	d, err := scanDiscount(r.q.QueryRow(ctx, `SELECT `+discountColumns+` FROM descuentos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get descuento: %w", err)
	}
	return d, nil
}

func (r *DiscountRepo) List(ctx context.Context) ([]*entity.Discount, error) {
	return r.list(ctx, `SELECT `+discountColumns+` FROM descuentos ORDER BY id`)
}

// ListByInvoice descuentos aplicados a una factura, en orden de creación.
func (r *DiscountRepo) ListByInvoice(ctx context.Context, invoiceID int64) ([]*entity.Discount, error) {
	return r.list(ctx, `SELECT `+discountColumns+` FROM descuentos WHERE factura_id = $1 ORDER BY id`, invoiceID)
}

func (r *DiscountRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Discount, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list descuentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan descuento: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DiscountRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "descuentos", id)
}
