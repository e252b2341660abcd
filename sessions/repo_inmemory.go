package sessions

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo keeps session keys in process memory; contents are lost on restart
type InMemoryRepo struct {
	mu     sync.RWMutex
	values map[string]map[string]string // browserID -> key -> value
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		values: make(map[string]map[string]string),
	}
}

func (r *InMemoryRepo) Get(_ context.Context, browserID, key string) (string, error) {
	if browserID == "" {
		return "", fmt.Errorf("browserID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[browserID][key]
	if !ok {
		return "", apperrors.ErrSessionNotFound
	}
	return v, nil
}

func (r *InMemoryRepo) Set(_ context.Context, browserID, key, value string) error {
	if browserID == "" {
		return fmt.Errorf("browserID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.values[browserID]; !ok {
		r.values[browserID] = make(map[string]string)
	}
	r.values[browserID][key] = value
	return nil
}

func (r *InMemoryRepo) Delete(_ context.Context, browserID string, keys ...string) error {
	if browserID == "" {
		return fmt.Errorf("browserID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	browserValues, ok := r.values[browserID]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(browserValues, k)
	}

	// Clean up empty browser map
	if len(browserValues) == 0 {
		delete(r.values, browserID)
	}
	return nil
}

func (r *InMemoryRepo) Close() error {
	return nil
}
