package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/auth"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/memory"
	"github.com/jeancarlo3213/ferrefactura-backend/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T, enabled bool) *auth.AuthUseCase {
	t.Helper()
	hash, err := auth.HashPassword("clave-segura")
	require.NoError(t, err)
	store := memory.NewStore()
	store.SeedUsers(entity.User{ID: 3, Name: "María", Username: "maria", PasswordHash: hash, Role: entity.RoleAdministrador, Enabled: enabled})
	return auth.NewAuthUseCase(memory.NewUserRepository(store), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc := newAuth(t, true)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.User.ID)
	assert.Equal(t, entity.RoleAdministrador, resp.User.Role)

	claims, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, entity.RoleAdministrador, claims.Role)
}

func TestLogin_ContraseñaIncorrecta(t *testing.T) {
	uc := newAuth(t, true)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuth(t, true)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioDeshabilitado(t *testing.T) {
	uc := newAuth(t, false)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestHashPassword_Vacia(t *testing.T) {
	_, err := auth.HashPassword("")
	assert.Error(t, err)
}
