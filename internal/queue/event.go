// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them. Notification
// delivery itself is an external collaborator; the engine never
// publishes, handlers do so after a transition has been persisted.
package queue

// DecidedQueueName is the durable queue reservation decision events
// are published to and consumed from.
const DecidedQueueName = "reservation.decided"

// ReservationDecidedEvent is published whenever a reservation leaves
// the PENDING state or an approved reservation is overridden:
// approval, rejection or cancellation. It carries enough context for
// downstream consumers to notify the requester without querying the
// primary database.
type ReservationDecidedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	RoomID        uint64  `json:"room_id"`
	RoomName      string  `json:"room_name"`
	BuildingID    uint64  `json:"building_id"`
	RequesterID   uint64  `json:"requester_id"`
	Date          string  `json:"date"`
	Window        string  `json:"window"` // "HH:MM-HH:MM"
	Status        string  `json:"status"`
	DecidedBy     uint64  `json:"decided_by"`
	Reason        *string `json:"reason,omitempty"`
	DecidedAt     string  `json:"decided_at"`
}
