package repository

import (
	"context"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// Update no toca la contraseña si PasswordHash viene vacío.
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
}
