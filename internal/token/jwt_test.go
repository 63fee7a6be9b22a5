package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigil-auth/vigil/internal/authz"
)

func testSigner() *JWTSigner {
	return NewJWTSigner([]byte("test-secret"), "vigil", "vigil-api", time.Hour)
}

func testIdentity() authz.Identity {
	return authz.Identity{ID: 42, Username: "alice", Roles: []string{"user", "editor"}, Locked: false}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	signer := testSigner()

	signed, jti, expiresAt, err := signer.Sign(testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, jti)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	identity, err := signer.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, testIdentity(), identity)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	signer := testSigner()
	signed, _, _, err := signer.Sign(testIdentity())
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = signer.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	expired := NewJWTSigner([]byte("test-secret"), "vigil", "vigil-api", -time.Hour)
	signed, _, _, err := expired.Sign(testIdentity())
	require.NoError(t, err)

	_, err = testSigner().Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	other := NewJWTSigner([]byte("other-secret"), "vigil", "vigil-api", time.Hour)
	signed, _, _, err := other.Sign(testIdentity())
	require.NoError(t, err)

	_, err = testSigner().Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	other := NewJWTSigner([]byte("test-secret"), "someone-else", "vigil-api", time.Hour)
	signed, _, _, err := other.Sign(testIdentity())
	require.NoError(t, err)

	_, err = testSigner().Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := testSigner().Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPayloadNeverCarriesPasswordMaterial(t *testing.T) {
	signer := testSigner()
	signed, _, _, err := signer.Sign(testIdentity())
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	assert.NotContains(t, strings.ToLower(string(payload)), "password")
	assert.NotContains(t, strings.ToLower(string(payload)), "hash")
}
