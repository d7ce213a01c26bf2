package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jeancarlo3213/ferrefactura-backend/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConRol(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 42, "Cajero", "ferrefactura-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Cajero", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID, "cada token lleva un jti único")
}

func TestGenerate_JTIDistintoPorToken(t *testing.T) {
	a, err := pkgjwt.Generate(testSecret, 1, "Cajero", "x", 60)
	require.NoError(t, err)
	b, err := pkgjwt.Generate(testSecret, 1, "Cajero", "x", 60)
	require.NoError(t, err)

	ca, err := pkgjwt.Parse(testSecret, a)
	require.NoError(t, err)
	cb, err := pkgjwt.Parse(testSecret, b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "Administrador", "x", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "Administrador", "x", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "Cajero", "x", 60)
	assert.Error(t, err)
}
