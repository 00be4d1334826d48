package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, secret string) *TokenManager {
	t.Helper()
	manager, err := NewTokenManager(secret, time.Hour)
	require.NoError(t, err)
	return manager
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	manager := newTestManager(t, "test-secret")

	token, err := manager.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := manager.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
}

func TestTokenManager_Expired(t *testing.T) {
	manager := newTestManager(t, "test-secret")
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issuedAt }

	token, err := manager.IssueWithTTL("user-123", time.Minute)
	require.NoError(t, err)

	manager.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = manager.Verify(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := newTestManager(t, "secret-a").Issue("user-123")
	require.NoError(t, err)

	_, err = newTestManager(t, "secret-b").Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbageAndOtherAlgorithms(t *testing.T) {
	manager := newTestManager(t, "test-secret")

	_, err := manager.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-123"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_AcceptsLegacyIDClaim(t *testing.T) {
	manager := newTestManager(t, "test-secret")

	legacy := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"_id": "user-legacy",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := legacy.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	userID, err := manager.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-legacy", userID)
}

func TestNewTokenManager_Validation(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	require.ErrorIs(t, err, ErrEmptySecret)

	_, err = newTestManager(t, "test-secret").Issue("")
	require.ErrorIs(t, err, ErrEmptySubject)
}
