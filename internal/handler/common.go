package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/unibook/room-reservation/internal/booking"
	"github.com/unibook/room-reservation/internal/model"
)

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getActor builds the workflow actor from the verified caller triple
// the JWT middleware stored in context.
func getActor(c echo.Context) (booking.Actor, error) {
	id, err := getUserID(c)
	if err != nil {
		return booking.Actor{}, err
	}
	roleStr, _ := c.Get("role").(string)
	role, ok := model.ParseRole(roleStr)
	if !ok {
		return booking.Actor{}, errors.New("invalid role in context")
	}
	actor := booking.Actor{ID: id, Role: role}
	if b, ok := c.Get("building_id").(uint64); ok {
		actor.BuildingID = &b
	}
	return actor, nil
}

// writeEngineError maps the engine's error taxonomy onto HTTP
// responses. Anything outside the taxonomy is a server fault.
func writeEngineError(c echo.Context, err error) error {
	var (
		vErr *booking.ValidationError
		cErr *booking.ConflictError
		uErr *booking.UnauthorizedError
		tErr *booking.InvalidTransitionError
		nErr *booking.NotFoundError
	)
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Error()})
	case errors.As(err, &cErr):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":          cErr.Error(),
			"blocking_start": model.FormatClock(cErr.Blocking.Start),
			"blocking_end":   model.FormatClock(cErr.Blocking.End),
			"blocking_id":    cErr.BlockingID,
		})
	case errors.As(err, &uErr):
		return c.JSON(http.StatusForbidden, echo.Map{"error": uErr.Error()})
	case errors.As(err, &tErr):
		return c.JSON(http.StatusConflict, echo.Map{"error": tErr.Error()})
	case errors.As(err, &nErr):
		return c.JSON(http.StatusNotFound, echo.Map{"error": nErr.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// reservationJSON is the wire shape of a reservation. Times go out as
// HH:MM strings, matching what callers submit.
type reservationJSON struct {
	ID             uint64     `json:"id"`
	RoomID         uint64     `json:"room_id"`
	RequesterID    uint64     `json:"requester_id"`
	Date           string     `json:"date"`
	Start          string     `json:"start"`
	End            string     `json:"end"`
	Purpose        string     `json:"purpose"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	DecidedBy      *uint64    `json:"decided_by,omitempty"`
	DecisionReason *string    `json:"decision_reason,omitempty"`
}

func toReservationJSON(r model.Reservation) reservationJSON {
	return reservationJSON{
		ID:             r.ID,
		RoomID:         r.RoomID,
		RequesterID:    r.RequesterID,
		Date:           r.Date,
		Start:          model.FormatClock(r.Window.Start),
		End:            model.FormatClock(r.Window.End),
		Purpose:        r.Purpose,
		Status:         r.Status.String(),
		CreatedAt:      r.CreatedAt,
		DecidedAt:      r.DecidedAt,
		DecidedBy:      r.DecidedBy,
		DecisionReason: r.DecisionReason,
	}
}

func toReservationListJSON(rs []model.Reservation) []reservationJSON {
	out := make([]reservationJSON, 0, len(rs))
	for _, r := range rs {
		out = append(out, toReservationJSON(r))
	}
	return out
}
