package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRequest(n int) domain.ReportRequest {
	return domain.ReportRequest{
		Type:       domain.ReportTypeProfitLoss,
		Year:       2024,
		ClientName: fmt.Sprintf("Client %d", n),
		Timestamp:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute),
		RequestID:  fmt.Sprintf("REQ-%d-aaaaaaaa", n),
	}
}

func TestStore_StartsEmpty(t *testing.T) {
	store := NewStore()
	assert.Empty(t, store.List())
}

func TestStore_Record_NewestFirst(t *testing.T) {
	store := NewStore()
	for n := 1; n <= 3; n++ {
		store.Record(makeRequest(n))
	}

	entries := store.List()
	require.Len(t, entries, 3)
	assert.Equal(t, "Client 3", entries[0].ClientName)
	assert.Equal(t, "Client 2", entries[1].ClientName)
	assert.Equal(t, "Client 1", entries[2].ClientName)
}

func TestStore_Record_EvictsOldestBeyondCapacity(t *testing.T) {
	store := NewStore()
	for n := 1; n <= Capacity+1; n++ {
		store.Record(makeRequest(n))
	}

	entries := store.List()
	require.Len(t, entries, Capacity)

	// 6 submissions leave 6..2 newest first; 1 is gone.
	for i, entry := range entries {
		assert.Equal(t, fmt.Sprintf("Client %d", Capacity+1-i), entry.ClientName)
	}
	_, found := store.Find(makeRequest(1).RequestID)
	assert.False(t, found)
}

func TestStore_List_ReturnsSnapshot(t *testing.T) {
	store := NewStore()
	store.Record(makeRequest(1))

	snapshot := store.List()
	snapshot[0].ClientName = "mutated"

	entries := store.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "Client 1", entries[0].ClientName)
}

func TestStore_Clear(t *testing.T) {
	store := NewStore()
	for n := 1; n <= 3; n++ {
		store.Record(makeRequest(n))
	}

	store.Clear()
	assert.Empty(t, store.List())

	// Clearing again is a no-op.
	store.Clear()
	assert.Empty(t, store.List())
}

func TestStore_Find(t *testing.T) {
	store := NewStore()
	store.Record(makeRequest(1))
	store.Record(makeRequest(2))

	entry, found := store.Find("REQ-2-aaaaaaaa")
	require.True(t, found)
	assert.Equal(t, "Client 2", entry.ClientName)

	_, found = store.Find("REQ-99-aaaaaaaa")
	assert.False(t, found)
}

func TestReplay_ProjectsFormValues(t *testing.T) {
	store := NewStore()
	req := makeRequest(7)
	store.Record(req)

	entry, found := store.Find(req.RequestID)
	require.True(t, found)

	values := Replay(entry)
	assert.Equal(t, domain.FormValues{
		Type:       req.Type,
		Year:       req.Year,
		ClientName: req.ClientName,
	}, values)

	// Replaying reads from the snapshot only; the window is untouched.
	assert.Len(t, store.List(), 1)
}
