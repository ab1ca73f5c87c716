package booking

import (
	"context"

	"github.com/unibook/room-reservation/internal/model"
)

// DefaultSearchLimit caps how many rooms one availability search may
// return when no explicit limit is configured.
const DefaultSearchLimit = 500

// Availability answers whether a room is free for a window and
// searches the catalog for free rooms. A reservation blocks a window
// only while its status is PENDING or APPROVED; rejected and
// cancelled reservations never block.
type Availability struct {
	store       ReservationStore
	catalog     Catalog
	searchLimit int
}

// NewAvailability builds an Availability calculator. searchLimit
// bounds ListAvailable results; values <= 0 fall back to
// DefaultSearchLimit.
func NewAvailability(store ReservationStore, catalog Catalog, searchLimit int) *Availability {
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}
	return &Availability{store: store, catalog: catalog, searchLimit: searchLimit}
}

// IsAvailable reports whether no blocking reservation for the room on
// the given date overlaps win. Two half-open windows [s1,e1) and
// [s2,e2) overlap iff s1 < e2 && s2 < e1, so back-to-back bookings
// sharing an endpoint do not conflict.
func (a *Availability) IsAvailable(ctx context.Context, roomID uint64, date string, win model.Window) (bool, error) {
	blocking, err := a.store.ListBlocking(ctx, roomID, date)
	if err != nil {
		return false, err
	}
	for _, r := range blocking {
		if r.Window.Overlaps(win) {
			return false, nil
		}
	}
	return true, nil
}

// ListAvailable returns the rooms of the given building and type that
// are free for the whole window on the given date, up to the search
// limit. The result order follows the catalog's room ordering.
func (a *Availability) ListAvailable(ctx context.Context, buildingID uint64, roomType model.RoomType, date string, win model.Window) ([]model.Room, error) {
	rooms, err := a.catalog.ListRooms(ctx, buildingID, roomType)
	if err != nil {
		return nil, err
	}
	free := make([]model.Room, 0, len(rooms))
	for _, room := range rooms {
		ok, err := a.IsAvailable(ctx, room.ID, date, win)
		if err != nil {
			return nil, err
		}
		if ok {
			free = append(free, room)
			if len(free) >= a.searchLimit {
				break
			}
		}
	}
	return free, nil
}
