package properties

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
)

const (
	MsgInvalidDataFormat = "Invalid data format"
	MsgListFailed        = "Failed to fetch properties"
	MsgDeleteFailed      = "Failed to delete property"
)

// ListState of the owner's property list
type ListState string

const (
	ListLoading    ListState = "loading"
	ListLoaded     ListState = "loaded"
	ListLoadFailed ListState = "load_failed"
)

// List caches the owner's properties and drives the two-step delete.
// It is safe for concurrent use.
type List struct {
	mu sync.Mutex

	state       ListState
	records     []Record
	loadError   string
	pendingID   string
	deleteError string
}

// NewList starts in the loading state
func NewList() *List {
	return &List{state: ListLoading}
}

// Load fetches the owner's properties and replaces the cache
func (l *List) Load(ctx context.Context, api Lister) error {
	records, err := api.ListOwnerProperties(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		log.Err(err).Msg("Failed to fetch owner properties")
		l.state = ListLoadFailed
		l.records = nil
		if apperrors.Is(err, apperrors.ErrDataShape) {
			l.loadError = MsgInvalidDataFormat
		} else {
			l.loadError = apperrors.MessageOr(err, MsgListFailed)
		}
		return apperrors.Wrapf(err, "[List Load]")
	}
	l.state = ListLoaded
	l.records = append([]Record{}, records...)
	l.loadError = ""
	if l.pendingID != "" && l.indexOf(l.pendingID) < 0 {
		l.pendingID = ""
	}
	return nil
}

// RequestDelete marks id as the property awaiting confirmation.
// It returns false when id is not in the cache.
func (l *List) RequestDelete(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexOf(id) < 0 {
		return false
	}
	l.pendingID = id
	l.deleteError = ""
	return true
}

// CancelDelete clears the pending target without calling the backend
func (l *List) CancelDelete() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingID = ""
	l.deleteError = ""
}

// ConfirmDelete deletes the pending target. On success exactly that record
// leaves the cache; on failure the cache and the target are kept.
func (l *List) ConfirmDelete(ctx context.Context, api Deleter) error {
	l.mu.Lock()
	id := l.pendingID
	l.mu.Unlock()
	if id == "" {
		return apperrors.Wrapf(apperrors.ErrNotFound, "[List ConfirmDelete] no pending delete")
	}

	err := api.DeleteProperty(ctx, id)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		log.Err(err).Str("property", id).Msg("Failed to delete property")
		l.deleteError = apperrors.MessageOr(err, MsgDeleteFailed)
		return apperrors.Wrapf(err, "[List ConfirmDelete] %s", id)
	}
	if i := l.indexOf(id); i >= 0 {
		l.records = append(l.records[:i:i], l.records[i+1:]...)
	}
	if l.pendingID == id {
		l.pendingID = ""
	}
	l.deleteError = ""
	return nil
}

// State returns the load state
func (l *List) State() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Records returns a copy of the cache
func (l *List) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Record(nil), l.records...)
}

// Pending returns the record awaiting delete confirmation
func (l *List) Pending() (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(l.pendingID); i >= 0 {
		return l.records[i], true
	}
	return Record{}, false
}

// LoadError is the message shown when loading failed
func (l *List) LoadError() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadError
}

// DeleteError is the message of the last failed delete
func (l *List) DeleteError() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.deleteError
}

func (l *List) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, r := range l.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
