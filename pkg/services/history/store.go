package history

import (
	"sync"

	"github.com/de-tools/report-desk/pkg/models/domain"
)

// Capacity bounds the history window. When a sixth request arrives the oldest
// entry is dropped; the order is strictly most-recent-first.
const Capacity = 5

// Store keeps the most recent accepted requests in memory. It starts empty
// and holds nothing across restarts; durable bookkeeping is the submission
// archive's job. Entries are value copies and never mutated in place.
type Store struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

func NewStore() *Store {
	return &Store{entries: make([]domain.HistoryEntry, 0, Capacity)}
}

// Record prepends the request's projection and evicts beyond capacity.
func (s *Store) Record(req domain.ReportRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]domain.HistoryEntry{domain.EntryFromRequest(req)}, s.entries...)
	if len(s.entries) > Capacity {
		s.entries = s.entries[:Capacity]
	}
}

// List returns a newest-first snapshot of length 0 to Capacity.
func (s *Store) List() []domain.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.HistoryEntry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

// Clear empties the window unconditionally. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
}

// Find looks an entry up by request id within the current window.
func (s *Store) Find(requestID string) (domain.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.entries {
		if entry.RequestID == requestID {
			return entry, true
		}
	}
	return domain.HistoryEntry{}, false
}

// Replay projects an entry back into form values. It reads nothing from the
// store and mutates nothing; resubmitting the values goes through the builder
// again and yields a new request id and timestamp.
func Replay(entry domain.HistoryEntry) domain.FormValues {
	return domain.FormValues{
		Type:       entry.Type,
		Year:       entry.Year,
		ClientName: entry.ClientName,
	}
}
