// Package session owns the client's authenticated session: the bearer token
// and the user profile it belongs to. Both are persisted together, restored
// together and cleared together; a session is never partially set.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/safariskills/passport/internal/client/models"
	"github.com/safariskills/passport/internal/client/store"
	"github.com/safariskills/passport/internal/dbx"
	"github.com/safariskills/passport/internal/logging"
)

// Storage keys of the two persisted entries.
const (
	keyToken = "ssp_auth_token"
	keyUser  = "ssp_user_data"
)

// Session is the authenticated identity held for the current process
// lifetime.
type Session struct {
	Token string
	User  models.UserProfile
}

// Store keeps the current session in memory and mirrors it to the local
// keyed store. Once a session has been saved or restored, the in-memory
// copy is authoritative; Restore does not re-read storage.
type Store struct {
	mu      sync.RWMutex
	current *Session

	repo store.Repository
	db   *sql.DB // when set, multi-key writes run in one transaction
	log  logging.Logger
	now  func() time.Time
}

// NewStore builds a session store over an arbitrary keyed repository.
// Writes are sequential, not transactional; use NewSQLiteStore for the
// durable store.
func NewStore(repo store.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Store{repo: repo, log: log, now: time.Now}
}

// NewSQLiteStore builds a session store whose Save and Clear write both
// entries inside a single transaction.
func NewSQLiteStore(db *sql.DB, log logging.Logger) *Store {
	s := NewStore(store.NewSQLiteRepository(db), log)
	s.db = db
	return s
}

// Current returns the in-memory session, or nil when signed out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Token returns the current bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Invalidate drops the session in response to an authentication failure.
// It is Clear under a name the gateway can depend on.
func (s *Store) Invalidate(ctx context.Context) error {
	return s.Clear(ctx)
}

// Restore returns the persisted session, if any.
//
// It never returns an error: a missing entry, a profile that does not
// unmarshal, an unknown role, or a token whose exp claim has passed are all
// treated as "no session". Once a session is held in memory, Restore
// returns it without re-reading storage.
func (s *Store) Restore(ctx context.Context) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		cp := *s.current
		return &cp, true
	}

	token, err := s.repo.Get(ctx, keyToken)
	if err != nil || len(token) == 0 {
		return nil, false
	}
	raw, err := s.repo.Get(ctx, keyUser)
	if err != nil || len(raw) == 0 {
		return nil, false
	}

	var user models.UserProfile
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn(ctx, "discarding malformed persisted profile", "err", err)
		return nil, false
	}
	if user.ID == "" || !user.Role.Valid() {
		s.log.Warn(ctx, "discarding persisted profile with bad identity", "role", user.Role)
		return nil, false
	}
	if s.tokenExpired(ctx, string(token)) {
		return nil, false
	}

	s.current = &Session{Token: string(token), User: user}
	cp := *s.current
	return &cp, true
}

// Save persists the token and profile together and installs them as the
// in-memory session. Storage and memory never disagree: on a storage error
// the in-memory session is left untouched.
func (s *Store) Save(ctx context.Context, token string, user models.UserProfile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if err := s.persist(ctx, []byte(token), raw); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &Session{Token: token, User: user}
	s.mu.Unlock()
	return nil
}

// Clear removes the persisted and in-memory session.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.wipe(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

func (s *Store) persist(ctx context.Context, token, user []byte) error {
	if s.db != nil {
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := store.NewSQLiteRepository(tx)
			if err := repo.Set(ctx, keyToken, token); err != nil {
				return err
			}
			return repo.Set(ctx, keyUser, user)
		})
	}
	if err := s.repo.Set(ctx, keyToken, token); err != nil {
		return err
	}
	return s.repo.Set(ctx, keyUser, user)
}

func (s *Store) wipe(ctx context.Context) error {
	if s.db != nil {
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := store.NewSQLiteRepository(tx)
			if err := repo.Delete(ctx, keyToken); err != nil {
				return err
			}
			return repo.Delete(ctx, keyUser)
		})
	}
	if err := s.repo.Delete(ctx, keyToken); err != nil {
		return err
	}
	return s.repo.Delete(ctx, keyUser)
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// The signature is not checked here: rejecting tokens is the server's call,
// this only avoids restoring a session the gateway is guaranteed to bounce.
// Opaque tokens that do not parse as JWTs are kept.
func (s *Store) tokenExpired(ctx context.Context, token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	if exp.Before(s.now()) {
		s.log.Info(ctx, "discarding expired persisted token", "expired_at", exp.Time)
		return true
	}
	return false
}
