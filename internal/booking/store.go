package booking

import (
	"context"

	"github.com/unibook/room-reservation/internal/model"
)

// Catalog is the engine's read-only view of the room directory.
// Catalog data is owned elsewhere (admin endpoints mutate it); the
// engine only resolves rooms and their owning buildings from it.
//
// GetRoom returns a *NotFoundError for unknown ids.
type Catalog interface {
	GetRoom(ctx context.Context, roomID uint64) (model.Room, error)
	ListRooms(ctx context.Context, buildingID uint64, roomType model.RoomType) ([]model.Room, error)
}

// TxView exposes the queries a TransitionFunc may run against the
// same transaction that holds the reservation row lock.
type TxView interface {
	// ApprovedOverlap returns an APPROVED reservation other than
	// excludeID that overlaps the given window on that room and date,
	// or nil when the window is clear. The returned reservation
	// carries at least its identifier and window so conflicts can name
	// the blocking slot.
	ApprovedOverlap(ctx context.Context, roomID uint64, date string, win model.Window, excludeID uint64) (*model.Reservation, error)
}

// TransitionFunc validates and mutates a reservation inside the
// store's critical section. Returning an error aborts the transition
// and leaves the stored reservation unchanged.
type TransitionFunc func(view TxView, r *model.Reservation) error

// ReservationStore is the single shared mutable resource of the
// engine. Implementations must make CreateIfAvailable and Transition
// atomic with respect to each other and to themselves: two concurrent
// admissions for overlapping windows on one room must not both
// succeed under any interleaving.
//
// All list methods return reservations in strictly descending
// identifier order (newest first).
type ReservationStore interface {
	// CreateIfAvailable persists r with a fresh identifier if and only
	// if no blocking reservation overlaps r's window. On overlap it
	// returns a *ConflictError naming the blocking window and persists
	// nothing. The room's existence is re-checked inside the same
	// critical section; unknown rooms yield a *NotFoundError.
	CreateIfAvailable(ctx context.Context, r *model.Reservation) error

	// GetByID returns a reservation or a *NotFoundError.
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)

	// ListBlocking returns the PENDING and APPROVED reservations for a
	// room on a date.
	ListBlocking(ctx context.Context, roomID uint64, date string) ([]model.Reservation, error)

	// Transition loads the reservation under a write lock, applies fn
	// and persists the mutated row, all within one critical section.
	// If fn errors, nothing is written and the error is returned
	// verbatim. Unknown ids yield a *NotFoundError.
	Transition(ctx context.Context, id uint64, fn TransitionFunc) (model.Reservation, error)

	ListByRequester(ctx context.Context, requesterID uint64) ([]model.Reservation, error)
	ListBreakoutByBuilding(ctx context.Context, buildingID uint64) ([]model.Reservation, error)
	ListClassroom(ctx context.Context) ([]model.Reservation, error)
}
