package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibook/room-reservation/internal/model"
)

func seedHistory(store *memStore) {
	testRooms(store)
	// Requester 42 books the building-1 breakout twice and the
	// classroom once; requester 7 books the classroom once.
	store.seed(model.Reservation{ID: 1, RoomID: 1, RequesterID: 42, Role: model.RoleStudent,
		Date: "2026-03-12", Window: model.Window{Start: 600, End: 660}, Purpose: "a", Status: model.StatusApproved})
	store.seed(model.Reservation{ID: 2, RoomID: 3, RequesterID: 7, Role: model.RoleStudent,
		Date: "2026-03-12", Window: model.Window{Start: 600, End: 660}, Purpose: "b", Status: model.StatusPending})
	store.seed(model.Reservation{ID: 3, RoomID: 1, RequesterID: 42, Role: model.RoleStudent,
		Date: "2026-03-13", Window: model.Window{Start: 600, End: 660}, Purpose: "c", Status: model.StatusRejected})
	store.seed(model.Reservation{ID: 4, RoomID: 3, RequesterID: 42, Role: model.RoleStudent,
		Date: "2026-03-14", Window: model.Window{Start: 600, End: 660}, Purpose: "d", Status: model.StatusCancelled})
}

func ids(rs []model.Reservation) []uint64 {
	out := make([]uint64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestHistoryForRequester(t *testing.T) {
	store := newMemStore()
	seedHistory(store)
	hist := NewHistory(store)

	// All of the requester's reservations, every status, newest first.
	got, err := hist.ForRequester(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 3, 1}, ids(got))

	got, err = hist.ForRequester(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, ids(got))

	got, err = hist.ForRequester(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistoryForBuildingIncharge(t *testing.T) {
	store := newMemStore()
	seedHistory(store)
	hist := NewHistory(store)

	// Only breakout reservations of building 1, not the classroom
	// ones, regardless of who requested them.
	got, err := hist.ForBuildingIncharge(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 1}, ids(got))

	got, err = hist.ForBuildingIncharge(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistoryForProgramOffice(t *testing.T) {
	store := newMemStore()
	seedHistory(store)
	hist := NewHistory(store)

	// Every classroom reservation across buildings and requesters.
	got, err := hist.ForProgramOffice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 2}, ids(got))
}
