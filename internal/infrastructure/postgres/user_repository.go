package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, nombre, usuario, password_hash, rol, habilitado`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var name, role *string
	if err := row.Scan(&u.ID, &name, &u.Username, &u.PasswordHash, &role, &u.Enabled); err != nil {
		return nil, err
	}
	u.Name = derefStr(name)
	u.Role = derefStr(role)
	return &u, nil
}

// Create persiste un nuevo usuario. PasswordHash ya debe venir hasheado.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO usuarios (nombre, usuario, password_hash, rol, habilitado) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		nullIfEmpty(u.Name), u.Username, u.PasswordHash, nullIfEmpty(u.Role), u.Enabled,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario por nombre de usuario (login).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM usuarios WHERE usuario = $1`, username)
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// List devuelve todos los usuarios ordenados por id.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM usuarios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza datos del usuario; la contraseña solo si PasswordHash no está vacío.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE usuarios SET nombre = $2, usuario = $3, rol = $4, habilitado = $5,
			password_hash = COALESCE($6, password_hash)
		WHERE id = $1`,
		u.ID, nullIfEmpty(u.Name), u.Username, nullIfEmpty(u.Role), u.Enabled, nullIfEmpty(u.PasswordHash),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina un usuario; si tiene facturas asociadas devuelve ErrInvalidInput.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "usuarios", id)
}
