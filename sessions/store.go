package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/users"
	"golang.org/x/oauth2"
)

var _ oauth2.TokenSource = (*Store)(nil)

// Store owns the Session of a single browser and mirrors it to durable storage.
// Every operation is total: storage failures are logged and the in-memory
// session is still updated.
type Store struct {
	repo      Repo
	browserID string
	now       func() time.Time

	mu      sync.RWMutex
	session Session
}

// NewStore returns an empty store; call Load to restore persisted state.
func NewStore(repo Repo, browserID string) *Store {
	return &Store{
		repo:      repo,
		browserID: browserID,
		now:       time.Now,
	}
}

// WithClock overrides the clock used for credential expiry checks
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// BrowserID is the durable storage scope of this store
func (s *Store) BrowserID() string {
	return s.browserID
}

// Load restores the session from durable storage. Both keys must be present
// and the identity must decode; otherwise the session stays empty.
func (s *Store) Load(ctx context.Context) {
	restored := Session{}
	defer func() {
		s.mu.Lock()
		s.session = restored
		s.mu.Unlock()
	}()

	token, err := s.repo.Get(ctx, s.browserID, KeyToken)
	if err != nil {
		s.logStorageErr(err, "load token")
		return
	}
	rawUser, err := s.repo.Get(ctx, s.browserID, KeyOwnerUser)
	if err != nil {
		s.logStorageErr(err, "load identity")
		return
	}
	if token == "" || rawUser == "" {
		return
	}

	var identity users.User
	if err := json.Unmarshal([]byte(rawUser), &identity); err != nil {
		log.Warn().Err(err).Str("browser_id", s.browserID).Msg("Discarding unreadable stored identity")
		return
	}
	if tokenExpired(token, s.now()) {
		log.Debug().Str("browser_id", s.browserID).Msg("Stored credential expired")
		return
	}

	restored = Session{Identity: &identity, Token: token}
}

// Login replaces the session and persists both keys
func (s *Store) Login(ctx context.Context, identity users.User, token string) {
	s.mu.Lock()
	s.session = Session{Identity: &identity, Token: token}
	s.mu.Unlock()

	if err := s.repo.Set(ctx, s.browserID, KeyToken, token); err != nil {
		s.logStorageErr(err, "persist token")
	}
	s.persistIdentity(ctx, identity)
}

// Logout clears the session and erases both keys
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = Session{}
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, s.browserID, KeyToken, KeyOwnerUser); err != nil {
		s.logStorageErr(err, "erase session")
	}
}

// UpdateIdentity replaces the identity only, keeping the current token
func (s *Store) UpdateIdentity(ctx context.Context, identity users.User) {
	s.mu.Lock()
	s.session.Identity = &identity
	s.mu.Unlock()

	s.persistIdentity(ctx, identity)
}

// IsAuthenticated is true iff an owner identity is held
func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated()
}

// Identity returns a copy of the held identity, or nil
func (s *Store) Identity() *users.User {
	snap := s.Snapshot()
	if snap.Identity == nil {
		return nil
	}
	u := *snap.Identity
	return &u
}

// Snapshot returns the current session by value
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token supplies the credential to outgoing backend calls
func (s *Store) Token() (*oauth2.Token, error) {
	token := s.Snapshot().Token
	if token == "" {
		return nil, apperrors.ErrSessionNotFound
	}
	t := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	if exp, ok := tokenExpiry(token); ok {
		t.Expiry = exp
	}
	return t, nil
}

func (s *Store) persistIdentity(ctx context.Context, identity users.User) {
	raw, err := json.Marshal(identity)
	if err != nil {
		s.logStorageErr(err, "encode identity")
		return
	}
	if err := s.repo.Set(ctx, s.browserID, KeyOwnerUser, string(raw)); err != nil {
		s.logStorageErr(err, "persist identity")
	}
}

func (s *Store) logStorageErr(err error, op string) {
	if errors.Is(err, apperrors.ErrSessionNotFound) {
		return
	}
	log.Err(err).Str("browser_id", s.browserID).Str("op", op).Msg("Session storage failure")
}
