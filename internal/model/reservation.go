package model

import "time"

// Reservation records one booking request for a room on a single
// calendar day. The identifier is assigned by the database on insert
// and increases monotonically, which history queries rely on for
// newest-first ordering. Reservations are never deleted; terminal
// statuses keep the row for history.
//
// Fields:
//  ID          – primary key identifier, assigned on creation.
//  RoomID      – room being reserved.
//  RequesterID – user who requested the reservation.
//  Role        – requester's role at request time.
//  Date        – calendar date (YYYY-MM-DD), no timezone.
//  Window      – half-open [start,end) minutes-of-day interval.
//  Purpose     – free-text purpose supplied by the requester.
//  Status      – lifecycle state (see Status).
//  CreatedAt   – creation timestamp.
//  DecidedAt   – when an authority approved/rejected, or the
//                requester cancelled (nil while pending).
//  DecidedBy   – user ID of the deciding actor (nil while pending).
//  DecisionReason – optional free text attached to a rejection.
type Reservation struct {
	ID             uint64     // reservations.id
	RoomID         uint64     // reservations.room_id
	RequesterID    uint64     // reservations.requester_id
	Role           Role       // reservations.requester_role
	Date           string     // reservations.res_date
	Window         Window     // reservations.start_min / end_min
	Purpose        string     // reservations.purpose
	Status         Status     // reservations.status
	CreatedAt      time.Time  // reservations.created_at
	DecidedAt      *time.Time // reservations.decided_at (nullable)
	DecidedBy      *uint64    // reservations.decided_by (nullable)
	DecisionReason *string    // reservations.decision_reason (nullable)
}
