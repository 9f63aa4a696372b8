package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("s3cret", Identity{UserID: "u-1", Username: "ana", Role: RoleWarehouse}, "inventory", 5)
	require.NoError(t, err)

	id, err := Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u-1", Username: "ana", Role: RoleWarehouse}, id)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("s3cret", Identity{UserID: "u-1"}, "inventory", 5)
	require.NoError(t, err)

	_, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate("s3cret", Identity{UserID: "u-1"}, "inventory", -1)
	require.NoError(t, err)

	_, err = Parse("s3cret", tok)
	assert.Error(t, err)
}

func TestParse_UsernamePorDefectoEsUserID(t *testing.T) {
	tok, err := Generate("s3cret", Identity{UserID: "u-9", Role: RoleAdmin}, "inventory", 5)
	require.NoError(t, err)

	id, err := Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-9", id.Username)
}

func TestSecretoVacio(t *testing.T) {
	_, err := Generate("", Identity{}, "inventory", 5)
	assert.Error(t, err)
	_, err = Parse("", "x")
	assert.Error(t, err)
}
