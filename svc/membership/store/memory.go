package store

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrymomot/premiumhub/svc/membership"
)

// Memory is a process-local membership.Store.
type Memory struct {
	mu      sync.RWMutex
	records map[string]membership.Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]membership.Record)}
}

func (m *Memory) Get(_ context.Context, memberID string) (*membership.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[memberID]
	if !ok {
		return nil, membership.ErrRecordNotFound
	}
	return &rec, nil
}

func (m *Memory) Upsert(_ context.Context, rec *membership.Record) error {
	if rec == nil || rec.MemberID == "" {
		return ErrInvalidRecord
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.MemberID] = *rec
	return nil
}

// All iterates over a snapshot ordered by member id, so fn may call Upsert.
func (m *Memory) All(ctx context.Context, fn func(membership.Record) error) error {
	m.mu.RLock()
	snapshot := make([]membership.Record, 0, len(m.records))
	for _, r := range m.records {
		snapshot = append(snapshot, r)
	}
	m.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].MemberID < snapshot[j].MemberID })
	for _, r := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
