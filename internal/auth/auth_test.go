package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_LoginAndVerify(t *testing.T) {
	svc, err := NewService("owner", "rahasia123", "test-secret", time.Hour)
	require.NoError(t, err)

	token, err := svc.Login("owner", "rahasia123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestService_Login_BadCredentials(t *testing.T) {
	svc, err := NewService("owner", "rahasia123", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = svc.Login("owner", "salah")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("admin", "rahasia123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_DisabledWithoutPassword(t *testing.T) {
	svc, err := NewService("owner", "", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = svc.Login("owner", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Verify_Garbage(t *testing.T) {
	svc, err := NewService("owner", "rahasia123", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Verify_WrongSecret(t *testing.T) {
	issuer, err := NewService("owner", "rahasia123", "secret-a", time.Hour)
	require.NoError(t, err)

	verifier, err := NewService("owner", "rahasia123", "secret-b", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Login("owner", "rahasia123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Verify_Expired(t *testing.T) {
	svc, err := NewService("owner", "rahasia123", "test-secret", time.Minute)
	require.NoError(t, err)

	issued := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.Login("owner", "rahasia123")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
