package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", time.Hour, "creamery")
	id := uuid.New()

	token, err := m.GenerateToken(id, "a@b.c", "Ann", "OWNER", []string{"sale:create"}, "v1")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "OWNER", claims.RoleCode)
	assert.Equal(t, []string{"sale:create"}, claims.Privileges)
	assert.Equal(t, "v1", claims.TokenVersion)
}

func TestValidateRejects(t *testing.T) {
	m := NewManager("secret", time.Hour, "creamery")
	token, err := m.GenerateToken(uuid.New(), "a@b.c", "Ann", "OWNER", nil, "v1")
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour, "creamery").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	expired := NewManager("secret", time.Hour, "creamery")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken(uuid.New(), "a@b.c", "Ann", "OWNER", nil, "v1")
	require.NoError(t, err)
	_, err = m.ValidateToken(old)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
