package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vigil-auth/vigil/internal/authz"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed payload or expiry. Callers get no finer detail.
var ErrInvalidToken = errors.New("token: invalid token")

// Signer signs and verifies identity-carrying tokens.
type Signer interface {
	Sign(identity authz.Identity) (signed string, jti string, expiresAt time.Time, err error)
	Verify(signed string) (authz.Identity, error)
}

type identityClaims struct {
	Identity json.RawMessage `json:"identity"`
	jwt.RegisteredClaims
}

// JWTSigner implements Signer with HS256 JWTs. Tokens are stateless:
// expiry is the only bound on their lifetime.
type JWTSigner struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewJWTSigner constructs a JWTSigner.
func NewJWTSigner(secret []byte, issuer, audience string, ttl time.Duration) *JWTSigner {
	return &JWTSigner{secret: secret, issuer: issuer, audience: audience, ttl: ttl}
}

// Sign embeds the identity snapshot in a signed token.
func (s *JWTSigner) Sign(identity authz.Identity) (string, string, time.Time, error) {
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("token: marshal identity: %w", err)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)
	jti := uuid.NewString()
	claims := identityClaims{
		Identity: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			Subject:   identity.Username,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("token: sign: %w", err)
	}
	return signed, jti, expiresAt, nil
}

// Verify checks signature, expiry, issuer and audience, then decodes the
// embedded identity with the closed schema.
func (s *JWTSigner) Verify(signed string) (authz.Identity, error) {
	var claims identityClaims
	parsed, err := jwt.ParseWithClaims(signed, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("token: unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return authz.Identity{}, ErrInvalidToken
	}

	identity, err := authz.DecodeIdentity(claims.Identity)
	if err != nil {
		return authz.Identity{}, ErrInvalidToken
	}
	return identity, nil
}

var _ Signer = (*JWTSigner)(nil)
