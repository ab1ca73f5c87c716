package booking

import (
	"context"
	"sort"
	"sync"

	"github.com/unibook/room-reservation/internal/model"
)

// memStore is an in-memory ReservationStore and Catalog used by the
// engine tests. It serializes everything with one mutex, which is
// enough to satisfy the atomicity contract for single-process tests.
type memStore struct {
	mu           sync.Mutex
	rooms        map[uint64]model.Room
	reservations map[uint64]model.Reservation
	nextID       uint64
}

func newMemStore() *memStore {
	return &memStore{
		rooms:        make(map[uint64]model.Room),
		reservations: make(map[uint64]model.Reservation),
		nextID:       1,
	}
}

func (m *memStore) addRoom(r model.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.ID] = r
}

// seed inserts a reservation directly, bypassing the conflict check.
// Tests use it to set up states the engine would normally prevent.
func (m *memStore) seed(r model.Reservation) model.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == 0 {
		r.ID = m.nextID
		m.nextID++
	} else if r.ID >= m.nextID {
		m.nextID = r.ID + 1
	}
	m.reservations[r.ID] = r
	return r
}

// ----- Catalog -----

func (m *memStore) GetRoom(_ context.Context, roomID uint64) (model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return model.Room{}, &NotFoundError{Kind: "room", ID: roomID}
	}
	return r, nil
}

func (m *memStore) ListRooms(_ context.Context, buildingID uint64, roomType model.RoomType) ([]model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Room{}
	for _, r := range m.rooms {
		if buildingID != 0 && r.BuildingID != buildingID {
			continue
		}
		if roomType != "" && r.Type != roomType {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ----- ReservationStore -----

func (m *memStore) CreateIfAvailable(_ context.Context, r *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[r.RoomID]; !ok {
		return &NotFoundError{Kind: "room", ID: r.RoomID}
	}
	for _, other := range m.sortedLocked() {
		if other.RoomID == r.RoomID && other.Date == r.Date &&
			other.Status.Blocks() && other.Window.Overlaps(r.Window) {
			return &ConflictError{
				RoomID:     r.RoomID,
				Date:       r.Date,
				Requested:  r.Window,
				Blocking:   other.Window,
				BlockingID: other.ID,
			}
		}
	}
	r.ID = m.nextID
	m.nextID++
	m.reservations[r.ID] = *r
	return nil
}

func (m *memStore) GetByID(_ context.Context, id uint64) (model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return model.Reservation{}, &NotFoundError{Kind: "reservation", ID: id}
	}
	return r, nil
}

func (m *memStore) ListBlocking(_ context.Context, roomID uint64, date string) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Reservation{}
	for _, r := range m.sortedLocked() {
		if r.RoomID == roomID && r.Date == date && r.Status.Blocks() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) Transition(_ context.Context, id uint64, fn TransitionFunc) (model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return model.Reservation{}, &NotFoundError{Kind: "reservation", ID: id}
	}
	if err := fn(&memTxView{store: m}, &r); err != nil {
		return model.Reservation{}, err
	}
	m.reservations[id] = r
	return r, nil
}

func (m *memStore) ListByRequester(_ context.Context, requesterID uint64) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Reservation{}
	for _, r := range m.sortedLocked() {
		if r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) ListBreakoutByBuilding(_ context.Context, buildingID uint64) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Reservation{}
	for _, r := range m.sortedLocked() {
		room, ok := m.rooms[r.RoomID]
		if ok && room.Type == model.RoomBreakout && room.BuildingID == buildingID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) ListClassroom(_ context.Context) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Reservation{}
	for _, r := range m.sortedLocked() {
		room, ok := m.rooms[r.RoomID]
		if ok && room.Type == model.RoomClassroom {
			out = append(out, r)
		}
	}
	return out, nil
}

// sortedLocked returns reservations in ascending id order. Callers
// must hold mu. The deliberately loose ordering lets history tests
// verify that History enforces descending order itself.
func (m *memStore) sortedLocked() []model.Reservation {
	out := make([]model.Reservation, 0, len(m.reservations))
	for _, r := range m.reservations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type memTxView struct {
	store *memStore
}

func (v *memTxView) ApprovedOverlap(_ context.Context, roomID uint64, date string, win model.Window, excludeID uint64) (*model.Reservation, error) {
	// Caller already holds the store mutex via Transition.
	for _, r := range v.store.sortedLocked() {
		if r.ID == excludeID {
			continue
		}
		if r.RoomID == roomID && r.Date == date &&
			r.Status == model.StatusApproved && r.Window.Overlaps(win) {
			return &r, nil
		}
	}
	return nil, nil
}
