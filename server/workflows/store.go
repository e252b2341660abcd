// Package workflows keeps the in-progress property drafts and list caches of
// each browser between requests.
package workflows

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/metrics"
	"github.com/shuzaifak/Property-Sync-Owner/properties"
)

const defaultTTL = 30 * time.Minute

type draftEntry struct {
	draft   *properties.Draft
	touched time.Time
}

type browserState struct {
	drafts  map[string]*draftEntry
	list    *properties.List
	touched time.Time
}

// Store holds workflow state keyed by browser id. Entries idle for longer
// than the TTL are dropped.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	browsers map[string]*browserState
}

// New creates a store; a zero ttl uses 30 minutes
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		browsers: make(map[string]*browserState),
	}
}

// WithClock replaces the time source, for tests
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// List returns the browser's property list, creating it on first use
func (s *Store) List(browserID string) *properties.List {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.browser(browserID)
	if b.list == nil {
		b.list = properties.NewList()
	}
	return b.list
}

// PutDraft stores a draft under its id
func (s *Store) PutDraft(browserID string, d *properties.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.browser(browserID)
	b.drafts[d.ID()] = &draftEntry{draft: d, touched: s.now()}
}

// Draft returns a live draft and extends its lifetime
func (s *Store) Draft(browserID, draftID string) (*properties.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.browsers[browserID]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "[workflows Draft] %s", draftID)
	}
	e, ok := b.drafts[draftID]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "[workflows Draft] %s", draftID)
	}
	now := s.now()
	if now.Sub(e.touched) > s.ttl {
		delete(b.drafts, draftID)
		metrics.WorkflowsEvictedTotal.WithLabelValues("draft").Inc()
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "[workflows Draft] %s expired", draftID)
	}
	e.touched = now
	b.touched = now
	return e.draft, nil
}

// DeleteDraft releases a draft and its uploaded files
func (s *Store) DeleteDraft(browserID, draftID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.browsers[browserID]; ok {
		delete(b.drafts, draftID)
	}
}

// Forget drops everything held for a browser, used on logout
func (s *Store) Forget(browserID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.browsers, browserID)
}

// Len returns the number of live drafts
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, b := range s.browsers {
		n += len(b.drafts)
	}
	return n
}

// Sweep evicts idle drafts and browsers
func (s *Store) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, b := range s.browsers {
		for draftID, e := range b.drafts {
			if now.Sub(e.touched) > s.ttl {
				delete(b.drafts, draftID)
				metrics.WorkflowsEvictedTotal.WithLabelValues("draft").Inc()
			}
		}
		if len(b.drafts) == 0 && now.Sub(b.touched) > s.ttl {
			if b.list != nil {
				metrics.WorkflowsEvictedTotal.WithLabelValues("list").Inc()
			}
			delete(s.browsers, id)
		}
	}
}

// Run sweeps every interval until ctx is done
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) browser(browserID string) *browserState {
	b, ok := s.browsers[browserID]
	if !ok {
		b = &browserState{drafts: make(map[string]*draftEntry)}
		s.browsers[browserID] = b
	}
	b.touched = s.now()
	return b
}
