package token

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vigil-auth/vigil/internal/authz"
	"github.com/vigil-auth/vigil/internal/shared"
)

// UserStore is the user lookup collaborator. The returned hash is empty
// unless includeHash is set.
type UserStore interface {
	FindByUsername(ctx context.Context, username string, includeHash bool) (authz.Identity, string, error)
}

// IssueAudit describes a token issuance event. Only metadata is recorded;
// the token itself is never persisted and never consulted afterwards.
type IssueAudit struct {
	JTI       string
	UserID    int64
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Auditor records issuance events. Failures must not block issuance.
type Auditor interface {
	TokenIssued(ctx context.Context, audit IssueAudit) error
}

// Service implements credential authentication and token issue/verify.
type Service struct {
	users   UserStore
	hasher  PasswordHasher
	signer  Signer
	auditor Auditor
	logger  *slog.Logger
}

// NewService constructs a Service. The auditor may be nil.
func NewService(users UserStore, hasher PasswordHasher, signer Signer, auditor Auditor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, hasher: hasher, signer: signer, auditor: auditor, logger: logger}
}

// Authenticate validates username/password credentials and returns the
// identity without its hash. Unknown accounts and wrong passwords
// collapse into the same wrong-credentials error so callers cannot probe
// for account existence; infrastructure faults surface as such.
func (s *Service) Authenticate(ctx context.Context, username, password string) (authz.Identity, error) {
	identity, hash, err := s.users.FindByUsername(ctx, username, true)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return authz.Identity{}, shared.ErrWrongCredentials
		}
		s.logger.Error("user lookup failed",
			slog.String("username", username),
			slog.Any("error", err))
		return authz.Identity{}, fmt.Errorf("token: look up user: %w", err)
	}
	if !s.hasher.Compare(password, hash) {
		return authz.Identity{}, shared.ErrWrongCredentials
	}
	return identity, nil
}

// Issue builds a signed token for the identity. The snapshot is validated
// before signing; a validation failure here is unreachable for identities
// produced by the user-store and is treated as an integrity fault.
func (s *Service) Issue(ctx context.Context, identity authz.Identity) (string, error) {
	if err := authz.ValidateIdentity(identity); err != nil {
		s.logger.Error("refusing to sign invalid identity",
			slog.String("username", identity.Username),
			slog.Any("error", err))
		return "", fmt.Errorf("token: identity failed validation before signing: %w", err)
	}

	signed, jti, expiresAt, err := s.signer.Sign(identity)
	if err != nil {
		return "", err
	}

	if s.auditor != nil {
		audit := IssueAudit{
			JTI:       jti,
			UserID:    identity.ID,
			Username:  identity.Username,
			IssuedAt:  time.Now().UTC(),
			ExpiresAt: expiresAt,
		}
		if err := s.auditor.TokenIssued(ctx, audit); err != nil {
			s.logger.Warn("record token issuance", slog.Any("error", err))
		}
	}
	return signed, nil
}

// Verify checks the token and returns the embedded identity snapshot.
// There is no server-side revocation; expiry is the only lifetime bound.
func (s *Service) Verify(signed string) (authz.Identity, error) {
	return s.signer.Verify(signed)
}
