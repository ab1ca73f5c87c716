package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibook/room-reservation/internal/model"
)

// fixedNow pins the admission clock to 2026-03-10 09:00 local time so
// date-policy tests are deterministic.
func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
}

func testRooms(store *memStore) {
	store.addRoom(model.Room{ID: 1, BuildingID: 1, Name: "B1-101", Type: model.RoomBreakout})
	store.addRoom(model.Room{ID: 2, BuildingID: 1, Name: "B1-102", Type: model.RoomBreakout})
	store.addRoom(model.Room{ID: 3, BuildingID: 2, Name: "C-201", Type: model.RoomClassroom})
}

func newTestAdmission(store *memStore, policy Policy) *Admission {
	return NewAdmission(store, store, policy, fixedNow)
}

func validReq() CreateRequest {
	return CreateRequest{
		RequesterID: 42,
		Role:        model.RoleStudent,
		RoomID:      1,
		Date:        "2026-03-12",
		Start:       "10:00",
		End:         "11:00",
		Purpose:     "study group",
	}
}

func TestAdmissionCreatesPendingReservation(t *testing.T) {
	store := newMemStore()
	testRooms(store)
	adm := newTestAdmission(store, Policy{})

	res, err := adm.Create(context.Background(), validReq())
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.Equal(t, "2026-03-12", res.Date)
	assert.Equal(t, model.Window{Start: 600, End: 660}, res.Window)
	assert.Nil(t, res.DecidedAt)
}

func TestAdmissionRejectsMalformedInput(t *testing.T) {
	store := newMemStore()
	testRooms(store)
	adm := newTestAdmission(store, Policy{})

	cases := []struct {
		name   string
		mutate func(*CreateRequest)
		field  string
	}{
		{"bad start clock", func(r *CreateRequest) { r.Start = "10:65" }, "window"},
		{"start equals end", func(r *CreateRequest) { r.Start = "10:00"; r.End = "10:00" }, "window"},
		{"start after end", func(r *CreateRequest) { r.Start = "12:00"; r.End = "11:00" }, "window"},
		{"bad date", func(r *CreateRequest) { r.Date = "12-03-2026" }, "date"},
		{"empty purpose", func(r *CreateRequest) { r.Purpose = "   " }, "purpose"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validReq()
			tc.mutate(&req)
			_, err := adm.Create(context.Background(), req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestAdmissionUnknownRoom(t *testing.T) {
	store := newMemStore()
	testRooms(store)
	adm := newTestAdmission(store, Policy{})

	req := validReq()
	req.RoomID = 999
	_, err := adm.Create(context.Background(), req)
	var nErr *NotFoundError
	require.ErrorAs(t, err, &nErr)
	assert.Equal(t, "room", nErr.Kind)
}

func TestAdmissionDatePolicy(t *testing.T) {
	store := newMemStore()
	testRooms(store)

	t.Run("past date rejected by default", func(t *testing.T) {
		adm := newTestAdmission(store, Policy{})
		req := validReq()
		req.Date = "2026-03-09"
		_, err := adm.Create(context.Background(), req)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "date", vErr.Field)
	})

	t.Run("same day allowed", func(t *testing.T) {
		adm := newTestAdmission(store, Policy{})
		req := validReq()
		req.Date = "2026-03-10"
		_, err := adm.Create(context.Background(), req)
		require.NoError(t, err)
	})

	t.Run("past date allowed when policy permits", func(t *testing.T) {
		adm := newTestAdmission(store, Policy{AllowPastDates: true})
		req := validReq()
		req.RoomID = 2
		req.Date = "2026-03-09"
		_, err := adm.Create(context.Background(), req)
		require.NoError(t, err)
	})

	t.Run("beyond horizon rejected", func(t *testing.T) {
		adm := newTestAdmission(store, Policy{HorizonDays: 7})
		req := validReq()
		req.Date = "2026-03-18"
		_, err := adm.Create(context.Background(), req)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "date", vErr.Field)
	})

	t.Run("at horizon allowed", func(t *testing.T) {
		adm := newTestAdmission(store, Policy{HorizonDays: 7})
		req := validReq()
		req.RoomID = 3
		req.Date = "2026-03-17"
		_, err := adm.Create(context.Background(), req)
		require.NoError(t, err)
	})
}

func TestAdmissionRefusesOverlap(t *testing.T) {
	store := newMemStore()
	testRooms(store)
	adm := newTestAdmission(store, Policy{})

	first, err := adm.Create(context.Background(), validReq())
	require.NoError(t, err)

	// Overlapping window on the same room and date must be refused
	// and the conflict must name the blocking reservation.
	req := validReq()
	req.Start = "10:30"
	req.End = "11:30"
	_, err = adm.Create(context.Background(), req)
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, first.ID, cErr.BlockingID)
	assert.Equal(t, first.Window, cErr.Blocking)

	// Same window on a different room is fine.
	req = validReq()
	req.RoomID = 2
	_, err = adm.Create(context.Background(), req)
	require.NoError(t, err)

	// Same window on a different date is fine.
	req = validReq()
	req.Date = "2026-03-13"
	_, err = adm.Create(context.Background(), req)
	require.NoError(t, err)
}

func TestAdmissionBackToBackWindowsDoNotConflict(t *testing.T) {
	store := newMemStore()
	testRooms(store)
	adm := newTestAdmission(store, Policy{})

	req := validReq()
	req.Start = "10:00"
	req.End = "10:15"
	_, err := adm.Create(context.Background(), req)
	require.NoError(t, err)

	// Windows are half-open: a booking starting exactly where the
	// previous one ends shares no minute with it.
	req.Start = "10:15"
	req.End = "10:30"
	_, err = adm.Create(context.Background(), req)
	require.NoError(t, err)
}

func TestAdmissionConcurrentCreatesAdmitExactlyOne(t *testing.T) {
	store := newMemStore()
	testRooms(store)
	adm := newTestAdmission(store, Policy{})

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			req := validReq()
			req.RequesterID = uint64(100 + n)
			_, errs[n] = adm.Create(context.Background(), req)
		}(i)
	}
	wg.Wait()

	// The overlap check and insert share one critical section, so no
	// interleaving may admit a second overlapping reservation; every
	// loser sees the conflict, never a partial write.
	created, conflicts := 0, 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		var cErr *ConflictError
		require.ErrorAs(t, err, &cErr)
		conflicts++
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)

	blocking, err := store.ListBlocking(context.Background(), 1, "2026-03-12")
	require.NoError(t, err)
	assert.Len(t, blocking, 1)
}

func TestAdmissionIgnoresNonBlockingReservations(t *testing.T) {
	store := newMemStore()
	testRooms(store)
	adm := newTestAdmission(store, Policy{})

	for _, status := range []model.Status{model.StatusRejected, model.StatusCancelled} {
		store.seed(model.Reservation{
			RoomID: 1, RequesterID: 7, Role: model.RoleStudent,
			Date: "2026-03-12", Window: model.Window{Start: 600, End: 660},
			Purpose: "old", Status: status,
		})
	}

	// The slot was rejected and cancelled before; it must be bookable.
	_, err := adm.Create(context.Background(), validReq())
	require.NoError(t, err)
}
