package usecase

import (
	"context"
	"strings"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/auth"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo Administrador). Las contraseñas se guardan con bcrypt.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create da de alta un usuario; rol por defecto Cajero y habilitado salvo que se indique lo contrario.
func (uc *UserUseCase) Create(ctx context.Context, in dto.UserRequest) (*dto.UserResponse, error) {
	if in.Password == "" {
		return nil, domain.NewValidationError("contraseña", "es obligatoria")
	}
	u := &entity.User{Enabled: true}
	if err := applyUser(u, in); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	resp := auth.ToUserResponse(u)
	return &resp, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := auth.ToUserResponse(u)
	return &resp, nil
}

func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// Update edita el usuario; contraseña vacía conserva la actual.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UserRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := applyUser(u, in); err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	if in.Password != "" {
		if u.PasswordHash, err = auth.HashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := auth.ToUserResponse(u)
	return &resp, nil
}

func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func applyUser(u *entity.User, in dto.UserRequest) error {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return domain.NewValidationError("usuario", "es obligatorio")
	}
	if !entity.ValidRole(in.Role) {
		return domain.NewValidationError("rol", "debe ser Cajero o Administrador")
	}
	u.Username = username
	u.Name = in.Name
	u.Role = in.Role
	if u.Role == "" {
		u.Role = entity.RoleCajero
	}
	if in.Enabled != nil {
		u.Enabled = *in.Enabled
	}
	return nil
}
