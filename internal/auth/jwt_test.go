package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardinghub/boardinghub/internal/auth"
)

func TestManager_GenerateValidate(t *testing.T) {
	m := auth.NewManager("unit-test-secret", time.Hour)
	userID := uuid.New()

	token, err := m.Generate(userID, "landlord")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "landlord", claims.Role)
}

func TestManager_Validate_WrongSecret(t *testing.T) {
	token, err := auth.NewManager("secret-a", time.Hour).Generate(uuid.New(), "tenant")
	require.NoError(t, err)

	_, err = auth.NewManager("secret-b", time.Hour).Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestManager_Validate_Expired(t *testing.T) {
	m := auth.NewManager("unit-test-secret", -time.Minute)

	token, err := m.Generate(uuid.New(), "tenant")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestManager_Validate_Garbage(t *testing.T) {
	m := auth.NewManager("unit-test-secret", time.Hour)

	_, err := m.Validate("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
