// Package booking implements the reservation engine: availability
// calculation, conflict-free admission of new reservations, the
// role-scoped approval workflow and role-filtered history queries.
// The engine is storage-agnostic; persistence is supplied through the
// interfaces in store.go.
package booking

import (
	"fmt"

	"github.com/unibook/room-reservation/internal/model"
)

// ValidationError reports malformed input: missing fields, a
// non-positive window, an unknown enum value or a date outside the
// configured booking policy. The caller must correct the request;
// retrying unchanged will fail again.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports that the requested window overlaps an
// existing blocking reservation. It names the blocking window so the
// caller can render exactly which slot is taken.
type ConflictError struct {
	RoomID     uint64
	Date       string
	Requested  model.Window
	Blocking   model.Window
	BlockingID uint64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %d is not available on %s %s: blocked by reservation %d (%s)",
		e.RoomID, e.Date, e.Requested, e.BlockingID, e.Blocking)
}

// UnauthorizedError reports a role/scope mismatch on an approval
// workflow transition. It is never downgraded to a no-op.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	return "unauthorized: " + e.Reason
}

// InvalidTransitionError reports an attempt to move a reservation out
// of a state that does not permit the requested transition, most
// commonly a mutation of a terminal reservation. The reservation is
// left unchanged.
type InvalidTransitionError struct {
	From   model.Status
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s reservation", e.Action, e.From)
}

// NotFoundError reports an unknown room or reservation identifier.
type NotFoundError struct {
	Kind string // "room" or "reservation"
	ID   uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}
