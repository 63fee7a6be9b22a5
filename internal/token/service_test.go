package token

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigil-auth/vigil/internal/authz"
	"github.com/vigil-auth/vigil/internal/shared"
)

type stubUserStore struct {
	identity authz.Identity
	hash     string
	err      error
}

func (s *stubUserStore) FindByUsername(ctx context.Context, username string, includeHash bool) (authz.Identity, string, error) {
	if s.err != nil {
		return authz.Identity{}, "", s.err
	}
	hash := ""
	if includeHash {
		hash = s.hash
	}
	return s.identity, hash, nil
}

type recordingAuditor struct {
	events []IssueAudit
	err    error
}

func (a *recordingAuditor) TokenIssued(ctx context.Context, audit IssueAudit) error {
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, audit)
	return nil
}

func newTestService(t *testing.T, store UserStore, auditor Auditor) *Service {
	t.Helper()
	signer := NewJWTSigner([]byte("test-secret"), "vigil", "vigil-api", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, BcryptHasher{Cost: 4}, signer, auditor, logger)
}

func TestAuthenticateSuccessStripsHash(t *testing.T) {
	hasher := BcryptHasher{Cost: 4}
	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)

	store := &stubUserStore{identity: testIdentity(), hash: hash}
	service := newTestService(t, store, nil)

	identity, err := service.Authenticate(context.Background(), "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, testIdentity(), identity)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	hasher := BcryptHasher{Cost: 4}
	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)

	store := &stubUserStore{identity: testIdentity(), hash: hash}
	service := newTestService(t, store, nil)

	_, err = service.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, shared.ErrWrongCredentials)
}

func TestAuthenticateUnknownUserSameError(t *testing.T) {
	store := &stubUserStore{err: shared.ErrNotFound}
	service := newTestService(t, store, nil)

	_, err := service.Authenticate(context.Background(), "nobody", "whatever")
	// Identical error whether the user exists or the password is wrong.
	assert.ErrorIs(t, err, shared.ErrWrongCredentials)
}

func TestAuthenticateStoreFailureIsNotWrongCredentials(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &stubUserStore{err: storeErr}
	service := newTestService(t, store, nil)

	_, err := service.Authenticate(context.Background(), "alice", "whatever")
	require.Error(t, err)
	// An outage must surface as an internal fault, never as a login refusal.
	assert.NotErrorIs(t, err, shared.ErrWrongCredentials)
	assert.ErrorIs(t, err, storeErr)
}

func TestIssueVerifyRoundTripLaw(t *testing.T) {
	auditor := &recordingAuditor{}
	service := newTestService(t, &stubUserStore{}, auditor)

	signed, err := service.Issue(context.Background(), testIdentity())
	require.NoError(t, err)

	identity, err := service.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, testIdentity(), identity)
}

func TestIssueRefusesInvalidIdentity(t *testing.T) {
	service := newTestService(t, &stubUserStore{}, nil)

	_, err := service.Issue(context.Background(), authz.Identity{ID: 1}) // no username
	require.Error(t, err)

	var validationErr *authz.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestIssueRecordsAuditMetadata(t *testing.T) {
	auditor := &recordingAuditor{}
	service := newTestService(t, &stubUserStore{}, auditor)

	_, err := service.Issue(context.Background(), testIdentity())
	require.NoError(t, err)

	require.Len(t, auditor.events, 1)
	event := auditor.events[0]
	assert.Equal(t, int64(42), event.UserID)
	assert.Equal(t, "alice", event.Username)
	assert.NotEmpty(t, event.JTI)
	assert.True(t, event.ExpiresAt.After(event.IssuedAt))
}

func TestIssueSucceedsWhenAuditorFails(t *testing.T) {
	auditor := &recordingAuditor{err: assert.AnError}
	service := newTestService(t, &stubUserStore{}, auditor)

	signed, err := service.Issue(context.Background(), testIdentity())
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
}

func TestBcryptHasherNormalisesInput(t *testing.T) {
	hasher := BcryptHasher{Cost: 4}
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"
	require.NotEqual(t, composed, decomposed)

	hash, err := hasher.Hash(composed)
	require.NoError(t, err)
	assert.True(t, hasher.Compare(decomposed, hash))
}
