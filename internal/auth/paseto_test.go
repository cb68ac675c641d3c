package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPasetoKey = []byte("0123456789abcdef0123456789abcdef")

func newTestPasetoService(t *testing.T, duration time.Duration) *PasetoService {
	t.Helper()
	svc, err := NewPasetoService(testPasetoKey, duration)
	require.NoError(t, err)
	return svc
}

func TestNewPasetoService_KeyLength(t *testing.T) {
	_, err := NewPasetoService([]byte("too short"), time.Hour)
	require.Error(t, err)

	_, err = NewPasetoService(testPasetoKey, time.Hour)
	require.NoError(t, err)
}

func TestPasetoService_RoundTrip(t *testing.T) {
	svc := newTestPasetoService(t, time.Hour)

	token, err := svc.CreateToken(42, "ann@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, time.Minute)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestPasetoService_VerifyToken_Tampered(t *testing.T) {
	svc := newTestPasetoService(t, time.Hour)

	token, err := svc.CreateToken(1, "a@x.com")
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"
	_, err = svc.VerifyToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasetoService_VerifyToken_Garbage(t *testing.T) {
	svc := newTestPasetoService(t, time.Hour)

	for _, tok := range []string{"", "not-a-token", "v4.local.AAAA"} {
		_, err := svc.VerifyToken(tok)
		assert.Error(t, err, "token %q should not verify", tok)
	}
}

func TestPasetoService_VerifyToken_WrongKey(t *testing.T) {
	issuer := newTestPasetoService(t, time.Hour)

	otherKey := []byte("ffffffffffffffffffffffffffffffff")
	verifier, err := NewPasetoService(otherKey, time.Hour)
	require.NoError(t, err)

	token, err := issuer.CreateToken(7, "b@x.com")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasetoService_VerifyToken_Expired(t *testing.T) {
	// Negative duration issues a token that is already expired
	svc := newTestPasetoService(t, -time.Minute)

	token, err := svc.CreateToken(3, "c@x.com")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
