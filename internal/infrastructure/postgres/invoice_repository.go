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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera y asigna ID y fecha de creación.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO facturas (usuario_id, nombre_cliente, fecha_entrega, costo_envio, descuento_total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, fecha_creacion`
	err := r.q.QueryRow(ctx, query,
		inv.UserID, nullIfEmpty(inv.CustomerName), inv.DeliveryDate, inv.ShippingCost, inv.DescuentoTotal,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: usuario %d", domain.ErrNotFound, inv.UserID)
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de factura.
func (r *InvoiceRepo) CreateLine(ctx context.Context, l *entity.InvoiceLine) error {
	query := `
		INSERT INTO facturas_detalle (factura_id, producto_id, cantidad, precio_unitario, tipo_venta)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, l.InvoiceID, l.ProductID, l.Quantity, l.UnitPrice, string(l.SaleMode)).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("insert factura detalle: %w", err)
	}
	return nil
}

const invoiceColumns = `id, fecha_creacion, usuario_id, nombre_cliente, fecha_entrega, costo_envio, descuento_total`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var customer *string
	if err := row.Scan(&inv.ID, &inv.CreatedAt, &inv.UserID, &customer, &inv.DeliveryDate,
		&inv.ShippingCost, &inv.DescuentoTotal); err != nil {
		return nil, err
	}
	inv.CustomerName = derefStr(customer)
	return &inv, nil
}

// GetByID obtiene la factura con sus líneas; (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM facturas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	if err := r.attachLines(ctx, []*entity.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

// List lista facturas (más recientes primero) con sus líneas.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceColumns+` FROM facturas ORDER BY fecha_creacion DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachLines carga las líneas de todas las facturas con una sola consulta.
func (r *InvoiceRepo) attachLines(ctx context.Context, invoices []*entity.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	byID := make(map[int64]*entity.Invoice, len(invoices))
	ids := make([]int64, 0, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID] = inv
		ids = append(ids, inv.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, factura_id, producto_id, cantidad, precio_unitario, tipo_venta
		FROM facturas_detalle WHERE factura_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("list factura detalles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.InvoiceLine
		var mode string
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.Quantity, &l.UnitPrice, &mode); err != nil {
			return fmt.Errorf("scan factura detalle: %w", err)
		}
		l.SaleMode = entity.SaleMode(mode)
		if inv, ok := byID[l.InvoiceID]; ok {
			inv.Lines = append(inv.Lines, &l)
		}
	}
	return rows.Err()
}

// Delete elimina la factura; detalles y descuentos se borran por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "facturas", id)
}

const lineViewQuery = `
	SELECT d.id, d.factura_id, d.producto_id, d.cantidad, d.precio_unitario, d.tipo_venta,
	       p.nombre, p.categoria, p.precio_unidad, p.precio_quintal,
	       f.nombre_cliente, f.fecha_creacion
	FROM facturas_detalle d
	JOIN productos p ON p.id = d.producto_id
	JOIN facturas f ON f.id = d.factura_id`

func scanLineView(row pgx.Row) (*repository.InvoiceLineView, error) {
	var v repository.InvoiceLineView
	var mode string
	var category, customer *string
	if err := row.Scan(&v.ID, &v.InvoiceID, &v.ProductID, &v.Quantity, &v.UnitPrice, &mode,
		&v.ProductName, &category, &v.PricePerUnit, &v.PricePerHundredweight,
		&customer, &v.InvoiceCreatedAt); err != nil {
		return nil, err
	}
	v.SaleMode = entity.SaleMode(mode)
	v.Category = derefStr(category)
	v.CustomerName = derefStr(customer)
	return &v, nil
}

// GetLine obtiene una línea con datos de producto y factura; (nil, nil) si no existe.
func (r *InvoiceRepo) GetLine(ctx context.Context, id int64) (*repository.InvoiceLineView, error) {
	v, err := scanLineView(r.q.QueryRow(ctx, lineViewQuery+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura detalle: %w", err)
	}
	return v, nil
}

// ListLines lista líneas (vista plana factura × detalle), más recientes primero.
func (r *InvoiceRepo) ListLines(ctx context.Context, limit, offset int) ([]*repository.InvoiceLineView, error) {
	rows, err := r.q.Query(ctx, lineViewQuery+` ORDER BY f.fecha_creacion DESC, d.id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list factura detalles: %w", err)
	}
	defer rows.Close()
	var list []*repository.InvoiceLineView
	for rows.Next() {
		v, err := scanLineView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan factura detalle: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
