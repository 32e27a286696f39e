package auth

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	viper.Set("auth.jwt_secret", "test-secret")
}

func TestSignAndVerify(t *testing.T) {
	token, err := Sign(42, "jo@example.com", true, RoleCustomer)
	require.NoError(t, err)

	claims, err := Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.True(t, claims.Verified)
	assert.Equal(t, RoleCustomer, claims.Role)
}

func TestVerify_TamperedToken(t *testing.T) {
	token, err := Sign(42, "jo@example.com", true, RoleCustomer)
	require.NoError(t, err)

	_, err = Verify(token + "x")
	require.Error(t, err)
}

func TestClaimsFromContext(t *testing.T) {
	_, err := ClaimsFromContext(context.Background())
	require.Error(t, err)

	ctx := WithClaims(context.Background(), &Claims{UserID: 42})
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestPasswordHashing(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	require.NotEmpty(t, salt)

	hash, err := HashPassword("hunter22", salt)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "hunter22", salt))
	assert.False(t, VerifyPassword(hash, "hunter23", salt))
	assert.False(t, VerifyPassword(hash, "hunter22", "othersalt"))
}
