package token

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGAuditor persists token issuance metadata for auditing. Verification
// never reads this table; it exists purely for operators.
type PGAuditor struct {
	pool *pgxpool.Pool
}

// NewPGAuditor constructs a PostgreSQL backed auditor.
func NewPGAuditor(pool *pgxpool.Pool) *PGAuditor {
	return &PGAuditor{pool: pool}
}

// TokenIssued records one issuance event.
func (a *PGAuditor) TokenIssued(ctx context.Context, audit IssueAudit) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO token_audit (jti, user_id, username, issued_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		audit.JTI, audit.UserID, audit.Username, audit.IssuedAt, audit.ExpiresAt)
	return err
}

// PurgeExpired deletes audit rows whose token expired before the cutoff.
// Returns the number of rows removed.
func (a *PGAuditor) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM token_audit WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ Auditor = (*PGAuditor)(nil)
