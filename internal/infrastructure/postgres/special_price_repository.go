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

var _ repository.SpecialPriceRepository = (*SpecialPriceRepo)(nil)

// SpecialPriceRepo precios especiales por tipo de cliente.
type SpecialPriceRepo struct {
	q Querier
}

func NewSpecialPriceRepository(q Querier) *SpecialPriceRepo {
	return &SpecialPriceRepo{q: q}
}

func (r *SpecialPriceRepo) Create(ctx context.Context, sp *entity.SpecialPrice) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO precios_especiales (producto_id, tipo_cliente, precio) VALUES ($1, $2, $3) RETURNING id`,
		sp.ProductID, sp.CustomerTier, sp.Price,
	).Scan(&sp.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, sp.ProductID)
		}
		return fmt.Errorf("insert precio especial: %w", err)
	}
	return nil
}

func (r *SpecialPriceRepo) GetByID(ctx context.Context, id int64) (*entity.SpecialPrice, error) {
	var sp entity.SpecialPrice
	err := r.q.QueryRow(ctx,
		`SELECT id, producto_id, tipo_cliente, precio FROM precios_especiales WHERE id = $1`, id,
	).Scan(&sp.ID, &sp.ProductID, &sp.CustomerTier, &sp.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get precio especial: %w", err)
	}
	return &sp, nil
}

func (r *SpecialPriceRepo) List(ctx context.Context) ([]*entity.SpecialPrice, error) {
	rows, err := r.q.Query(ctx, `SELECT id, producto_id, tipo_cliente, precio FROM precios_especiales ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list precios especiales: %w", err)
	}
	defer rows.Close()
	var list []*entity.SpecialPrice
	for rows.Next() {
		var sp entity.SpecialPrice
		if err := rows.Scan(&sp.ID, &sp.ProductID, &sp.CustomerTier, &sp.Price); err != nil {
			return nil, fmt.Errorf("scan precio especial: %w", err)
		}
		list = append(list, &sp)
	}
	return list, rows.Err()
}

func (r *SpecialPriceRepo) Update(ctx context.Context, sp *entity.SpecialPrice) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE precios_especiales SET producto_id = $2, tipo_cliente = $3, precio = $4 WHERE id = $1`,
		sp.ID, sp.ProductID, sp.CustomerTier, sp.Price,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, sp.ProductID)
		}
		return fmt.Errorf("update precio especial: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SpecialPriceRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "precios_especiales", id)
}
