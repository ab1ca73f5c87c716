package booking

import (
	"context"
	"sort"

	"github.com/unibook/room-reservation/internal/model"
)

// History serves role-filtered reservation listings. Every listing is
// ordered by identifier descending, newest first; the ordering is
// enforced here even if a store implementation returns rows loosely
// ordered. History listings are not capped.
type History struct {
	store ReservationStore
}

// NewHistory builds a History query service over the given store.
func NewHistory(store ReservationStore) *History {
	return &History{store: store}
}

// ForRequester lists every reservation the given user has requested,
// across all rooms and statuses.
func (h *History) ForRequester(ctx context.Context, requesterID uint64) ([]model.Reservation, error) {
	return descending(h.store.ListByRequester(ctx, requesterID))
}

// ForBuildingIncharge lists every breakout-room reservation in the
// given building, across all statuses.
func (h *History) ForBuildingIncharge(ctx context.Context, buildingID uint64) ([]model.Reservation, error) {
	return descending(h.store.ListBreakoutByBuilding(ctx, buildingID))
}

// ForProgramOffice lists every classroom reservation globally, across
// all statuses.
func (h *History) ForProgramOffice(ctx context.Context) ([]model.Reservation, error) {
	return descending(h.store.ListClassroom(ctx))
}

func descending(rs []model.Reservation, err error) ([]model.Reservation, error) {
	if err != nil {
		return nil, err
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID > rs[j].ID })
	return rs, nil
}
