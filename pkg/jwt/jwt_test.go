package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", "u-1", "client", "estoque-api", 5)
	require.NoError(t, err)

	userID, tenantID, role, err := Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "u-1", tenantID)
	assert.Equal(t, "client", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", "u-1", "admin", "estoque-api", 5)
	require.NoError(t, err)

	_, _, _, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", "u-1", "admin", "estoque-api", -1)
	require.NoError(t, err)

	_, _, _, err = Parse("s3cret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u-1", "u-1", "admin", "estoque-api", 5)
	assert.Error(t, err)
}
