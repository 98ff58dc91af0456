// Package store persists layout reports for the HTTP API.
//
// Reports are addressed by a random UUID assigned on [Store.Put]. The
// in-memory store serves single instances and tests; [MongoStore] shares
// reports between server replicas.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/layout"
)

// Store keeps layout reports.
type Store interface {
	// Put saves r, assigning r.ID and r.Created when unset, and returns the ID.
	Put(ctx context.Context, r *layout.Report) (string, error)
	// Get returns the report with the given ID or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*layout.Report, error)
	Close(ctx context.Context) error
}

// prepare fills in the ID and creation time of a new report.
func prepare(r *layout.Report) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Created.IsZero() {
		r.Created = time.Now().UTC()
	}
}

// validID rejects IDs that are not UUIDs before they reach a backend.
func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid layout id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
}

// Memory is a Store backed by a map.
type Memory struct {
	mu      sync.RWMutex
	reports map[string]*layout.Report
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{reports: make(map[string]*layout.Report)}
}

func (m *Memory) Put(ctx context.Context, r *layout.Report) (string, error) {
	prepare(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.ID] = r
	return r.ID, nil
}

func (m *Memory) Get(ctx context.Context, id string) (*layout.Report, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, notFound(id)
	}
	return r, nil
}

// Len returns the number of stored reports.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.reports)
}

func (m *Memory) Close(ctx context.Context) error { return nil }

var _ Store = (*Memory)(nil)
