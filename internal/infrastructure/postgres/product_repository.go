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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, nombre, precio, precio_unidad, precio_quintal, costo_unidad, costo_quintal,
	unidades_por_quintal, categoria, stock, fecha_creacion`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var category *string
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.PricePerUnit, &p.PricePerHundredweight,
		&p.CostPerUnit, &p.CostPerHundredweight, &p.UnitsPerHundredweight, &category, &p.Stock, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Category = derefStr(category)
	return &p, nil
}

// Create persiste un nuevo producto y asigna ID y fecha.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO productos (nombre, precio, precio_unidad, precio_quintal, costo_unidad, costo_quintal,
			unidades_por_quintal, categoria, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, fecha_creacion`
	err := r.q.QueryRow(ctx, query,
		p.Name, p.Price, p.PricePerUnit, p.PricePerHundredweight, p.CostPerUnit, p.CostPerHundredweight,
		p.UnitsPerHundredweight, nullIfEmpty(p.Category), p.Stock,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// List lista productos ordenados por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM productos ORDER BY nombre LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update reemplaza los datos de catálogo. Las líneas ya facturadas guardan su propio precio y no cambian.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE productos SET nombre = $2, precio = $3, precio_unidad = $4, precio_quintal = $5,
			costo_unidad = $6, costo_quintal = $7, unidades_por_quintal = $8, categoria = $9, stock = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Price, p.PricePerUnit, p.PricePerHundredweight, p.CostPerUnit, p.CostPerHundredweight,
		p.UnitsPerHundredweight, nullIfEmpty(p.Category), p.Stock,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto; si ya fue facturado devuelve ErrInvalidInput.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "productos", id)
}
