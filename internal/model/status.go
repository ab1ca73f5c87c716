package model

// Status is the lifecycle state of a reservation. The set is closed
// and transitions are monotonic: PENDING is the only initial state,
// REJECTED and CANCELLED are sinks, and APPROVED may only move to
// REJECTED (authority override) or CANCELLED (requester).
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus maps a raw string onto a Status. Unknown strings are
// reported via the boolean rather than matched loosely.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// Blocks reports whether a reservation in this status counts toward
// conflict detection. Only PENDING and APPROVED reservations block an
// overlapping window; rejected and cancelled ones never do.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusApproved
}

// Terminal reports whether no further transition is permitted from
// this status. APPROVED is not terminal: it can still be rejected by
// the responsible authority or cancelled by the requester.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal
// status transition.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusCancelled
	case StatusApproved:
		return next == StatusRejected || next == StatusCancelled
	}
	return false
}

// String returns the wire representation of the status.
func (s Status) String() string { return string(s) }
