package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/unibook/room-reservation/internal/booking"
	"github.com/unibook/room-reservation/internal/model"
)

// AvailabilityHandler serves the room availability search. It only
// reads: stale-by-one-row results are acceptable for search, the
// admission controller re-checks under lock before persisting.
type AvailabilityHandler struct {
	Avail *booking.Availability
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(avail *booking.Availability) *AvailabilityHandler {
	if avail == nil {
		panic("nil availability passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Avail: avail}
}

type roomJSON struct {
	ID         uint64 `json:"id"`
	BuildingID uint64 `json:"building_id"`
	Name       string `json:"name"`
	RoomType   string `json:"room_type"`
}

func toRoomListJSON(rooms []model.Room) []roomJSON {
	out := make([]roomJSON, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomJSON{ID: r.ID, BuildingID: r.BuildingID, Name: r.Name, RoomType: r.Type.String()})
	}
	return out
}

// Search handles GET /v1/availability. All query parameters are
// required: building_id, room_type, date, start, end. It returns the
// rooms of that building and type that are free for the whole window.
func (h *AvailabilityHandler) Search(c echo.Context) error {
	buildingID, err := strconv.ParseUint(c.QueryParam("building_id"), 10, 64)
	if err != nil || buildingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building_id"})
	}
	roomType, ok := model.ParseRoomType(c.QueryParam("room_type"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room_type"})
	}
	if _, err := model.ParseDate(c.QueryParam("date")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	win, err := model.ParseWindow(c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if !win.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be before end"})
	}

	rooms, err := h.Avail.ListAvailable(c.Request().Context(), buildingID, roomType, c.QueryParam("date"), win)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toRoomListJSON(rooms)})
}
