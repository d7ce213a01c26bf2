package memory

import (
	"context"
	"fmt"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria; usuario único.
type UserRepo struct{ base }

func NewUserRepository(s *Store) *UserRepo { return &UserRepo{base{s: s}} }

func usernameTaken(d *data, username string, exceptID int64) bool {
	for id, u := range d.users {
		if id != exceptID && u.Username == username {
			return true
		}
	}
	return false
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.write(func(d *data) error {
		if usernameTaken(d, u.Username, 0) {
			return domain.ErrDuplicate
		}
		u.ID = d.next("usuarios")
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	r.read(func(d *data) {
		if u, ok := d.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.read(func(d *data) {
		for _, u := range d.users {
			if u.Username == username {
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var list []*entity.User
	r.read(func(d *data) {
		for _, id := range sortedKeys(d.users) {
			u := d.users[id]
			list = append(list, &u)
		}
	})
	return list, nil
}

// Update conserva el hash actual si PasswordHash viene vacío.
func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.write(func(d *data) error {
		old, ok := d.users[u.ID]
		if !ok {
			return domain.ErrUserNotFound
		}
		if usernameTaken(d, u.Username, u.ID) {
			return domain.ErrDuplicate
		}
		if u.PasswordHash == "" {
			u.PasswordHash = old.PasswordHash
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	return r.write(func(d *data) error {
		if _, ok := d.users[id]; !ok {
			return domain.ErrNotFound
		}
		for _, inv := range d.invoices {
			if inv.UserID == id {
				return fmt.Errorf("%w: usuarios %d tiene registros asociados", domain.ErrInvalidInput, id)
			}
		}
		delete(d.users, id)
		return nil
	})
}
