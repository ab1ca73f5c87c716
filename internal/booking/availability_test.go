package booking

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibook/room-reservation/internal/model"
)

func TestIsAvailable(t *testing.T) {
	store := newMemStore()
	testRooms(store)
	avail := NewAvailability(store, store, 0)

	store.seed(model.Reservation{
		RoomID: 1, RequesterID: 7, Role: model.RoleStudent,
		Date: "2026-03-12", Window: model.Window{Start: 600, End: 660},
		Purpose: "seminar", Status: model.StatusApproved,
	})

	cases := []struct {
		name string
		win  model.Window
		want bool
	}{
		{"identical window", model.Window{Start: 600, End: 660}, false},
		{"overlaps tail", model.Window{Start: 630, End: 690}, false},
		{"contains booking", model.Window{Start: 540, End: 720}, false},
		{"ends at booking start", model.Window{Start: 540, End: 600}, true},
		{"starts at booking end", model.Window{Start: 660, End: 720}, true},
		{"disjoint", model.Window{Start: 900, End: 960}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := avail.IsAvailable(context.Background(), 1, "2026-03-12", tc.win)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("other date unaffected", func(t *testing.T) {
		got, err := avail.IsAvailable(context.Background(), 1, "2026-03-13", model.Window{Start: 600, End: 660})
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestPendingBlocksAvailability(t *testing.T) {
	store := newMemStore()
	testRooms(store)
	avail := NewAvailability(store, store, 0)

	store.seed(model.Reservation{
		RoomID: 1, RequesterID: 7, Role: model.RoleStudent,
		Date: "2026-03-12", Window: model.Window{Start: 600, End: 660},
		Purpose: "pending one", Status: model.StatusPending,
	})

	got, err := avail.IsAvailable(context.Background(), 1, "2026-03-12", model.Window{Start: 630, End: 690})
	require.NoError(t, err)
	assert.False(t, got, "a pending reservation must block the slot")
}

func TestListAvailableFilters(t *testing.T) {
	store := newMemStore()
	testRooms(store)
	avail := NewAvailability(store, store, 0)

	// B1-101 is taken for the window, B1-102 is free.
	store.seed(model.Reservation{
		RoomID: 1, RequesterID: 7, Role: model.RoleStudent,
		Date: "2026-03-12", Window: model.Window{Start: 600, End: 660},
		Purpose: "taken", Status: model.StatusApproved,
	})

	rooms, err := avail.ListAvailable(context.Background(), 1, model.RoomBreakout, "2026-03-12", model.Window{Start: 600, End: 660})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "B1-102", rooms[0].Name)

	// The classroom in building 2 is untouched by building 1 bookings.
	rooms, err = avail.ListAvailable(context.Background(), 2, model.RoomClassroom, "2026-03-12", model.Window{Start: 600, End: 660})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "C-201", rooms[0].Name)
}

func TestListAvailableHonorsSearchLimit(t *testing.T) {
	store := newMemStore()
	for i := uint64(1); i <= 10; i++ {
		store.addRoom(model.Room{
			ID: i, BuildingID: 1,
			Name: fmt.Sprintf("R-%02d", i), Type: model.RoomBreakout,
		})
	}
	avail := NewAvailability(store, store, 3)

	rooms, err := avail.ListAvailable(context.Background(), 1, model.RoomBreakout, "2026-03-12", model.Window{Start: 600, End: 660})
	require.NoError(t, err)
	assert.Len(t, rooms, 3)
}
