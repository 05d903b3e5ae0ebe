// Package checkpoint persists partial classification results so an
// interrupted run can resume without recomputing finished rows.
package checkpoint

import (
	"context"
	"sync"

	"porticus/internal/models"
)

// Store keeps row results per run id. Save must be idempotent: re-saving an
// existing (run, row) pair leaves the first value in place.
type Store interface {
	Load(ctx context.Context, runID string) (models.Results, error)
	Save(ctx context.Context, runID string, batch models.Results) error
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu   sync.Mutex
	runs map[string]models.Results
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: map[string]models.Results{}}
}

func (m *MemoryStore) Load(_ context.Context, runID string) (models.Results, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := models.Results{}
	out.Merge(m.runs[runID])
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, runID string, batch models.Results) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[runID]
	if !ok {
		r = models.Results{}
		m.runs[runID] = r
	}
	r.Merge(batch)
	return nil
}
