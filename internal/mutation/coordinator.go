// Package mutation orchestrates create/update/delete/approve calls. Every
// path re-validates capability even when the UI already hid the action; the
// gate is not cosmetic.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ledgerline/ledgerline-mobile/internal/rbac"
	"github.com/ledgerline/ledgerline-mobile/internal/session"
)

var (
	// ErrConfirmationRequired means a destructive action was dispatched
	// without the caller having completed the confirmation step.
	ErrConfirmationRequired = errors.New("mutation: confirmation required")
	// ErrInvalidPayload means the payload failed validation before dispatch.
	ErrInvalidPayload = errors.New("mutation: invalid payload")
)

// Request describes one attempted mutation.
type Request struct {
	Module rbac.Module
	Action rbac.Action
	// Payload is validated with its struct tags when non-nil.
	Payload any
	// Confirmed must be set for delete and approve; the caller presents the
	// confirmation step before dispatch, never after.
	Confirmed bool
}

// Call performs the remote mutation. The idempotency key is fresh per
// dispatch so the backend can drop accidental resubmissions.
type Call func(ctx context.Context, idempotencyKey string) error

// Resync re-derives list state from the server after a successful mutation.
type Resync func(ctx context.Context) error

// Coordinator wraps mutations for one screen's session and grant set.
type Coordinator struct {
	sess     session.Session
	grants   rbac.GrantSet
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCoordinator constructs a Coordinator.
func NewCoordinator(sess session.Session, grants rbac.GrantSet, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		sess:     sess,
		grants:   grants,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Allowed answers the capability question for this coordinator's session.
func (c *Coordinator) Allowed(m rbac.Module, a rbac.Action) bool {
	return rbac.Can(c.sess, c.grants, m, a)
}

// Execute runs the capability check, the confirmation and validation gates,
// then the call, then the resync. A denied check aborts before any network
// call with the offending module and action in the error.
func (c *Coordinator) Execute(ctx context.Context, req Request, call Call, resync Resync) error {
	if !c.Allowed(req.Module, req.Action) {
		if c.logger != nil {
			c.logger.Warn("mutation denied",
				slog.String("module", string(req.Module)),
				slog.String("action", string(req.Action)),
				slog.Int64("user_id", c.sess.UserID))
		}
		return rbac.Denied(req.Module, req.Action)
	}
	if destructive(req.Action) && !req.Confirmed {
		return ErrConfirmationRequired
	}
	if req.Payload != nil {
		if err := c.validate.StructCtx(ctx, req.Payload); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}

	if err := call(ctx, uuid.NewString()); err != nil {
		return err
	}
	if resync != nil {
		return resync(ctx)
	}
	return nil
}

// destructive actions are irreversible and require the confirm-then-execute
// ritual.
func destructive(a rbac.Action) bool {
	return a == rbac.ActionDelete || a == rbac.ActionApprove
}
