package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/unibook/room-reservation/internal/model"
)

// Actor is the verified identity performing a workflow transition, as
// supplied by the authenticator. BuildingID is set for building
// incharges and scopes their authority to that building.
type Actor struct {
	ID         uint64
	Role       model.Role
	BuildingID *uint64
}

// Workflow drives the reservation state machine. Transitions are
// guarded by the actor's role and scope against the room's type:
// classroom reservations are decided only by the program office,
// breakout reservations only by the incharge of the owning building.
// Terminal reservations are never mutated.
type Workflow struct {
	store   ReservationStore
	catalog Catalog
	now     func() time.Time
}

// NewWorkflow builds a Workflow. now may be nil, in which case the
// server clock is used.
func NewWorkflow(store ReservationStore, catalog Catalog, now func() time.Time) *Workflow {
	if now == nil {
		now = time.Now
	}
	return &Workflow{store: store, catalog: catalog, now: now}
}

// Approve moves a PENDING reservation to APPROVED. Before writing it
// re-checks, inside the store's critical section, that no other
// APPROVED reservation overlaps the window; the admission invariant
// makes that impossible, but if it is ever observed the approval
// fails with a *ConflictError instead of breaking the invariant.
func (w *Workflow) Approve(ctx context.Context, id uint64, actor Actor) (model.Reservation, error) {
	room, err := w.roomFor(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if err := authorize(actor, room); err != nil {
		return model.Reservation{}, err
	}
	return w.store.Transition(ctx, id, func(view TxView, r *model.Reservation) error {
		if r.Status != model.StatusPending {
			return &InvalidTransitionError{From: r.Status, Action: "approve"}
		}
		other, err := view.ApprovedOverlap(ctx, r.RoomID, r.Date, r.Window, r.ID)
		if err != nil {
			return err
		}
		if other != nil {
			return &ConflictError{
				RoomID:     r.RoomID,
				Date:       r.Date,
				Requested:  r.Window,
				Blocking:   other.Window,
				BlockingID: other.ID,
			}
		}
		w.decide(r, model.StatusApproved, actor.ID, nil)
		return nil
	})
}

// Reject moves a PENDING or APPROVED reservation to REJECTED. The
// same authority that approves may reject, including rejecting an
// already-approved reservation (cancellation by authority). reason is
// optional free text recorded with the decision.
func (w *Workflow) Reject(ctx context.Context, id uint64, actor Actor, reason string) (model.Reservation, error) {
	room, err := w.roomFor(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if err := authorize(actor, room); err != nil {
		return model.Reservation{}, err
	}
	return w.store.Transition(ctx, id, func(_ TxView, r *model.Reservation) error {
		if !r.Status.CanTransitionTo(model.StatusRejected) {
			return &InvalidTransitionError{From: r.Status, Action: "reject"}
		}
		var rp *string
		if s := strings.TrimSpace(reason); s != "" {
			rp = &s
		}
		w.decide(r, model.StatusRejected, actor.ID, rp)
		return nil
	})
}

// Cancel moves a PENDING or APPROVED reservation to CANCELLED. Only
// the original requester may cancel; anyone else gets an
// *UnauthorizedError regardless of role.
func (w *Workflow) Cancel(ctx context.Context, id uint64, requesterID uint64) (model.Reservation, error) {
	return w.store.Transition(ctx, id, func(_ TxView, r *model.Reservation) error {
		if r.RequesterID != requesterID {
			return &UnauthorizedError{Reason: "only the requester may cancel this reservation"}
		}
		if !r.Status.CanTransitionTo(model.StatusCancelled) {
			return &InvalidTransitionError{From: r.Status, Action: "cancel"}
		}
		w.decide(r, model.StatusCancelled, requesterID, nil)
		return nil
	})
}

func (w *Workflow) decide(r *model.Reservation, next model.Status, actorID uint64, reason *string) {
	t := w.now().UTC()
	r.Status = next
	r.DecidedAt = &t
	r.DecidedBy = &actorID
	r.DecisionReason = reason
}

// roomFor resolves the room a reservation points at so the authority
// guard can run before the transition critical section. Catalog rows
// are immutable, so reading them outside the transaction is safe.
func (w *Workflow) roomFor(ctx context.Context, reservationID uint64) (model.Room, error) {
	r, err := w.store.GetByID(ctx, reservationID)
	if err != nil {
		return model.Room{}, err
	}
	return w.catalog.GetRoom(ctx, r.RoomID)
}

// authorize checks the role/scope guard for approve and reject.
func authorize(actor Actor, room model.Room) error {
	switch room.Type {
	case model.RoomClassroom:
		if actor.Role != model.RoleProgramOffice {
			return &UnauthorizedError{Reason: "classroom reservations are decided by the program office"}
		}
	case model.RoomBreakout:
		if actor.Role != model.RoleBuildingIncharge {
			return &UnauthorizedError{Reason: "breakout reservations are decided by the building incharge"}
		}
		if actor.BuildingID == nil || *actor.BuildingID != room.BuildingID {
			return &UnauthorizedError{Reason: fmt.Sprintf("actor is not the incharge of building %d", room.BuildingID)}
		}
	default:
		return &ValidationError{Field: "room_type", Reason: "unknown room type " + string(room.Type)}
	}
	return nil
}
