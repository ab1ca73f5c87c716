package booking

import (
	"context"
	"strings"
	"time"

	"github.com/unibook/room-reservation/internal/model"
)

// Policy holds the admission-time booking policy. The source system
// never restricted booking dates; both knobs exist so deployments can
// make that choice explicitly instead of inheriting it silently.
type Policy struct {
	// AllowPastDates admits reservations for dates before the current
	// server day when true.
	AllowPastDates bool
	// HorizonDays limits how far in advance a reservation may start,
	// in days from the current server day. Zero means unlimited.
	HorizonDays int
}

// CreateRequest carries the caller-supplied fields of a new
// reservation. The requester identity and role come from the
// authenticator, never from the request body.
type CreateRequest struct {
	RequesterID uint64
	Role        model.Role
	RoomID      uint64
	Date        string // YYYY-MM-DD
	Start       string // HH:MM
	End         string // HH:MM
	Purpose     string
}

// Admission validates and atomically creates reservations. Validation
// fails fast: the first violated rule is reported and nothing is
// persisted on any failure.
type Admission struct {
	store   ReservationStore
	catalog Catalog
	policy  Policy
	now     func() time.Time
}

// NewAdmission builds an admission controller. now may be nil, in
// which case the server clock is used.
func NewAdmission(store ReservationStore, catalog Catalog, policy Policy, now func() time.Time) *Admission {
	if now == nil {
		now = time.Now
	}
	return &Admission{store: store, catalog: catalog, policy: policy, now: now}
}

// Create admits a new reservation. Checks run in order: window shape,
// date policy, purpose, room existence, then the conflict-checked
// insert. The overlap check and the insert execute inside one store
// critical section, so two concurrent calls for overlapping windows
// on the same room cannot both succeed. On success the returned
// reservation is PENDING and carries its database-assigned
// identifier.
func (a *Admission) Create(ctx context.Context, req CreateRequest) (model.Reservation, error) {
	win, err := model.ParseWindow(req.Start, req.End)
	if err != nil {
		return model.Reservation{}, &ValidationError{Field: "window", Reason: err.Error()}
	}
	if !win.Valid() {
		return model.Reservation{}, &ValidationError{Field: "window", Reason: "start must be before end within one day"}
	}
	day, err := model.ParseDate(req.Date)
	if err != nil {
		return model.Reservation{}, &ValidationError{Field: "date", Reason: err.Error()}
	}
	if err := a.checkDatePolicy(day); err != nil {
		return model.Reservation{}, err
	}
	if strings.TrimSpace(req.Purpose) == "" {
		return model.Reservation{}, &ValidationError{Field: "purpose", Reason: "must not be empty"}
	}
	if _, err := a.catalog.GetRoom(ctx, req.RoomID); err != nil {
		return model.Reservation{}, err
	}

	r := model.Reservation{
		RoomID:      req.RoomID,
		RequesterID: req.RequesterID,
		Role:        req.Role,
		Date:        day.Format(model.DateLayout),
		Window:      win,
		Purpose:     strings.TrimSpace(req.Purpose),
		Status:      model.StatusPending,
		CreatedAt:   a.now().UTC(),
	}
	if err := a.store.CreateIfAvailable(ctx, &r); err != nil {
		return model.Reservation{}, err
	}
	return r, nil
}

func (a *Admission) checkDatePolicy(day time.Time) error {
	today := a.now().In(day.Location())
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, day.Location())
	if !a.policy.AllowPastDates && day.Before(today) {
		return &ValidationError{Field: "date", Reason: "date is in the past"}
	}
	if a.policy.HorizonDays > 0 {
		horizon := today.AddDate(0, 0, a.policy.HorizonDays)
		if day.After(horizon) {
			return &ValidationError{Field: "date", Reason: "date is beyond the booking horizon"}
		}
	}
	return nil
}
