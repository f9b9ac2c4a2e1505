package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	password := "pw123"
	hash, err := HashPassword(password)

	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, password, hash)

	other, err := HashPassword(password)
	require.NoError(t, err)
	require.NotEqual(t, hash, other, "hashes should be salted")
}

func TestCheckPasswordHash(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	require.True(t, CheckPasswordHash(password, hash), "Password should match the hash")

	for _, wrong := range []string{"mySecretPassword124", "mySecretPassword12", "MySecretPassword123", ""} {
		require.False(t, CheckPasswordHash(wrong, hash), "%q should not match the hash", wrong)
	}
}

func TestHashPassword_LongPasswords(t *testing.T) {
	long := strings.Repeat("p", 80)
	hash, err := HashPassword(long)
	require.NoError(t, err)

	require.True(t, CheckPasswordHash(long, hash))
	// bcrypt alone would ignore everything past byte 72.
	require.False(t, CheckPasswordHash(long[:72], hash))
	require.False(t, CheckPasswordHash(long+"q", hash))
}

func TestGenerateAndVerifySessionToken(t *testing.T) {
	secret := "my_super_secret_key_for_testing"
	expiresAt := time.Now().Add(24 * time.Hour)

	tokenString, err := GenerateSessionToken("sid-123", 42, "alice", expiresAt, secret)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := VerifySessionToken(tokenString, secret)
	require.NoError(t, err)
	require.Equal(t, "sid-123", claims.SessionID)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)

	_, err = VerifySessionToken(tokenString, "wrong_secret")
	require.ErrorIs(t, err, jwt.ErrSignatureInvalid)

	expired, err := GenerateSessionToken("sid-old", 42, "alice", time.Now().Add(-time.Minute), secret)
	require.NoError(t, err)
	_, err = VerifySessionToken(expired, secret)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifySessionToken_RejectsForeignIssuer(t *testing.T) {
	secret := "secret"
	claims := &SessionClaims{
		SessionID: "sid",
		UserID:    1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = VerifySessionToken(tokenString, secret)
	require.Error(t, err)
}

func TestVerifySessionToken_RequiresSessionID(t *testing.T) {
	secret := "secret"
	tokenString, err := GenerateSessionToken("", 1, "bob", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	_, err = VerifySessionToken(tokenString, secret)
	require.ErrorIs(t, err, ErrInvalidToken)
}
