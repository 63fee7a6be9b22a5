package authz

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Outcome classifies an authorization decision.
type Outcome int

const (
	// OutcomeFatal means the decision could not be made safely. It marks
	// a wiring or authoring bug, is surfaced as an internal error, and is
	// never reported to the caller as an ordinary refusal.
	OutcomeFatal Outcome = iota
	// OutcomeDeny is an expected, user-facing refusal.
	OutcomeDeny
	// OutcomeAllow grants access.
	OutcomeAllow
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAllow:
		return "allow"
	case OutcomeDeny:
		return "deny"
	default:
		return "fatal"
	}
}

// Decision is the result of a single authorization call.
type Decision struct {
	Outcome Outcome
	Reason  string
	// Err carries the underlying fault on the fatal path, for operators.
	Err error
}

// Allowed reports whether the decision grants access.
func (d Decision) Allowed() bool { return d.Outcome == OutcomeAllow }

// AuthResult is what the upstream authentication layer hands to the
// guard: whether token verification succeeded, and for whom. A missing
// token yields a successful result carrying the guest identity.
type AuthResult struct {
	OK       bool
	Identity Identity
}

// DecisionRecorder observes decision outcomes, typically for metrics.
type DecisionRecorder interface {
	RecordDecision(outcome string)
}

// Guard orchestrates the authorization decision procedure.
type Guard struct {
	registry *Registry
	resolver *Resolver
	logger   *slog.Logger
	recorder DecisionRecorder
}

// NewGuard constructs a Guard. The recorder may be nil.
func NewGuard(registry *Registry, resolver *Resolver, logger *slog.Logger, recorder DecisionRecorder) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{registry: registry, resolver: resolver, logger: logger, recorder: recorder}
}

// Authorize decides whether the authenticated principal may execute the
// named operation. Identity validation and requirement extraction have no
// data dependency and run concurrently; resolution waits for a validated
// identity.
func (g *Guard) Authorize(ctx context.Context, result AuthResult, operation string) Decision {
	if !result.OK {
		// Authentication is expected to have gated this call already;
		// disagreement indicates a wiring bug upstream, not a deny.
		return g.fatal(operation, result.Identity, "authentication layer reported failure", nil)
	}

	var (
		req         Requirement
		extractErr  error
		validateErr error
		grp         errgroup.Group
	)
	grp.Go(func() error {
		req, extractErr = g.registry.Extract(operation)
		return nil
	})
	grp.Go(func() error {
		validateErr = ValidateIdentity(result.Identity)
		return nil
	})
	_ = grp.Wait()
	if err := ctx.Err(); err != nil {
		return g.fatal(operation, result.Identity, "authorization abandoned", err)
	}

	if validateErr != nil {
		return g.fatal(operation, result.Identity, "identity failed schema validation", validateErr)
	}
	if extractErr != nil {
		return g.fatal(operation, result.Identity, "requirement extraction failed", extractErr)
	}

	if req.NoAuth {
		return g.allow(operation, result.Identity)
	}

	effective, err := g.resolver.Resolve(ctx, result.Identity)
	if err != nil {
		return g.fatal(operation, result.Identity, "permission resolution failed", err)
	}

	if effective.ContainsAll(req.Permissions) {
		return g.allow(operation, result.Identity)
	}
	return g.deny(operation, result.Identity)
}

func (g *Guard) allow(operation string, identity Identity) Decision {
	g.record(OutcomeAllow)
	g.logger.Debug("access granted",
		slog.String("operation", operation),
		slog.String("username", identity.Username))
	return Decision{Outcome: OutcomeAllow}
}

func (g *Guard) deny(operation string, identity Identity) Decision {
	g.record(OutcomeDeny)
	// Expected outcome: logged as an access-control event, not an error,
	// and without naming the missing permission.
	g.logger.Info("access denied",
		slog.String("operation", operation),
		slog.String("username", identity.Username))
	return Decision{Outcome: OutcomeDeny, Reason: "permission denied"}
}

func (g *Guard) fatal(operation string, identity Identity, reason string, err error) Decision {
	g.record(OutcomeFatal)
	g.logger.Error("authorization fatal",
		slog.String("operation", operation),
		slog.String("username", identity.Username),
		slog.String("reason", reason),
		slog.Any("error", err))
	return Decision{Outcome: OutcomeFatal, Reason: reason, Err: err}
}

func (g *Guard) record(outcome Outcome) {
	if g.recorder != nil {
		g.recorder.RecordDecision(outcome.String())
	}
}
