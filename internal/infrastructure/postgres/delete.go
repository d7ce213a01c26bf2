package postgres

import (
	"context"
	"fmt"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
)

// deleteByID borra una fila por id. table viene siempre de una constante del paquete, nunca del cliente.
// Sin filas afectadas -> ErrNotFound; fila aún referenciada (FK) -> ErrInvalidInput.
func deleteByID(ctx context.Context, q Querier, table string, id int64) error {
	cmd, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s %d tiene registros asociados", domain.ErrInvalidInput, table, id)
		}
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
