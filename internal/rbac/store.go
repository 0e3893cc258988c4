package rbac

import (
	"context"
	"log/slog"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/ledgerline/ledgerline-mobile/internal/session"
)

// GrantSource fetches the raw grant list for a user from the backend.
type GrantSource interface {
	Grants(ctx context.Context, userID int64) ([]Grant, error)
}

// Store resolves the current session's role and grant set. Grant-fetch
// failures collapse into an empty set: a user is shown "no access", never an
// error screen, when the permission fetch goes wrong.
type Store struct {
	sessions session.Provider
	source   GrantSource
	logger   *slog.Logger
	group    singleflight.Group
}

// NewStore constructs a Store.
func NewStore(sessions session.Provider, source GrantSource, logger *slog.Logger) *Store {
	return &Store{sessions: sessions, source: source, logger: logger}
}

// LoadForCurrentUser reads the session and, for the restricted role, fetches
// its grants. Concurrent loads for the same user share one fetch. The only
// error returned is a missing session; capability-gated rendering must wait
// for this call to complete.
func (s *Store) LoadForCurrentUser(ctx context.Context) (session.Session, GrantSet, error) {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return session.Session{}, NewGrantSet(nil), err
	}
	if !sess.Restricted() {
		return sess, NewGrantSet(nil), nil
	}

	key := strconv.FormatInt(sess.UserID, 10)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.source.Grants(ctx, sess.UserID)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("grant fetch failed, treating as no access",
				slog.Int64("user_id", sess.UserID), slog.Any("error", err))
		}
		return sess, NewGrantSet(nil), nil
	}
	grants, _ := v.([]Grant)
	return sess, NewGrantSet(grants), nil
}
