package postgres

import (
	"context"
	"fmt"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

var _ repository.PrintJobRepository = (*PrintJobRepo)(nil)

// PrintJobRepo cola de trabajos de impresión.
type PrintJobRepo struct {
	q Querier
}

func NewPrintJobRepository(q Querier) *PrintJobRepo {
	return &PrintJobRepo{q: q}
}

func (r *PrintJobRepo) Create(ctx context.Context, job *entity.PrintJob) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO print_jobs (text, printed) VALUES ($1, false) RETURNING id, created_at`, job.Text,
	).Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert print job: %w", err)
	}
	job.Printed = false
	return nil
}

// ListPending trabajos sin imprimir, el más antiguo primero.
func (r *PrintJobRepo) ListPending(ctx context.Context) ([]*entity.PrintJob, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, text, printed, created_at FROM print_jobs WHERE printed = false ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list print jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.PrintJob
	for rows.Next() {
		var j entity.PrintJob
		if err := rows.Scan(&j.ID, &j.Text, &j.Printed, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan print job: %w", err)
		}
		list = append(list, &j)
	}
	return list, rows.Err()
}

func (r *PrintJobRepo) MarkPrinted(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `UPDATE print_jobs SET printed = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark printed: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
