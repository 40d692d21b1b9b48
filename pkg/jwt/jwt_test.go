package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := Generate("s3cret", "emp-1", RoleCashier, "pos-stock", 10)
	require.NoError(t, err)

	claims, err := Parse("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims.EmployeeID)
	assert.Equal(t, RoleCashier, claims.Role)
	assert.Equal(t, "pos-stock", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("s3cret", "emp-1", RoleManager, "pos-stock", 10)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := Generate("s3cret", "emp-1", RoleManager, "pos-stock", -1)
	require.NoError(t, err)

	_, err = Parse("s3cret", token)
	assert.Error(t, err)
}

func TestGenerate_Validation(t *testing.T) {
	_, err := Generate("", "emp-1", RoleCashier, "x", 10)
	assert.Error(t, err)
	_, err = Generate("s", "", RoleCashier, "x", 10)
	assert.Error(t, err)
}
