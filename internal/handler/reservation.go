package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/unibook/room-reservation/internal/booking"
	"github.com/unibook/room-reservation/internal/model"
	"github.com/unibook/room-reservation/internal/queue"
	queue_publisher "github.com/unibook/room-reservation/internal/service"
)

// ReservationHandler exposes the reservation engine over HTTP:
// admission, the approval workflow and history listings. Decision
// events are published to the broker after the engine has persisted
// the transition; publish failures never fail the request.
type ReservationHandler struct {
	Admission *booking.Admission
	Workflow  *booking.Workflow
	History   *booking.History
	Catalog   booking.Catalog
}

// NewReservationHandler constructs a ReservationHandler. All
// dependencies must be non-nil.
func NewReservationHandler(adm *booking.Admission, wf *booking.Workflow, hist *booking.History, catalog booking.Catalog) *ReservationHandler {
	if adm == nil || wf == nil || hist == nil || catalog == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Admission: adm, Workflow: wf, History: hist, Catalog: catalog}
}

type createReservationReq struct {
	RoomID  uint64 `json:"room_id" validate:"required"`
	Date    string `json:"date" validate:"required"`
	Start   string `json:"start" validate:"required"`
	End     string `json:"end" validate:"required"`
	Purpose string `json:"purpose" validate:"required"`
}

type rejectReq struct {
	Reason string `json:"reason"`
}

// Create handles POST /v1/reservations. The requester identity and
// role come from the verified token, never from the body.
func (h *ReservationHandler) Create(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.Admission.Create(c.Request().Context(), booking.CreateRequest{
		RequesterID: actor.ID,
		Role:        actor.Role,
		RoomID:      req.RoomID,
		Date:        req.Date,
		Start:       req.Start,
		End:         req.End,
		Purpose:     req.Purpose,
	})
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, toReservationJSON(res))
}

// Approve handles POST /v1/reservations/:id/approve.
func (h *ReservationHandler) Approve(c echo.Context) error {
	return h.transition(c, func(ctx context.Context, id uint64, actor booking.Actor) (model.Reservation, error) {
		return h.Workflow.Approve(ctx, id, actor)
	})
}

// Reject handles POST /v1/reservations/:id/reject with an optional
// reason in the body.
func (h *ReservationHandler) Reject(c echo.Context) error {
	var req rejectReq
	_ = c.Bind(&req) // body is optional
	return h.transition(c, func(ctx context.Context, id uint64, actor booking.Actor) (model.Reservation, error) {
		return h.Workflow.Reject(ctx, id, actor, req.Reason)
	})
}

// Cancel handles POST /v1/reservations/:id/cancel. Only the original
// requester may cancel; the workflow enforces that.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	return h.transition(c, func(ctx context.Context, id uint64, actor booking.Actor) (model.Reservation, error) {
		return h.Workflow.Cancel(ctx, id, actor.ID)
	})
}

func (h *ReservationHandler) transition(c echo.Context, fn func(context.Context, uint64, booking.Actor) (model.Reservation, error)) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := fn(c.Request().Context(), id, actor)
	if err != nil {
		return writeEngineError(c, err)
	}
	h.publishDecision(res)
	return c.JSON(http.StatusOK, toReservationJSON(res))
}

// List handles GET /v1/reservations?scope=... Scopes are bound to the
// caller's role: students see their own requests, a building incharge
// sees the breakout reservations of their building, the program
// office sees all classroom reservations.
func (h *ReservationHandler) List(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	scope := c.QueryParam("scope")
	if scope == "" {
		scope = "self"
	}
	var list []model.Reservation
	switch scope {
	case "self":
		list, err = h.History.ForRequester(ctx, actor.ID)
	case "building-incharge":
		if actor.Role != model.RoleBuildingIncharge || actor.BuildingID == nil {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		list, err = h.History.ForBuildingIncharge(ctx, *actor.BuildingID)
	case "program-office":
		if actor.Role != model.RoleProgramOffice {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		list, err = h.History.ForProgramOffice(ctx)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown scope"})
	}
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toReservationListJSON(list)})
}

// publishDecision emits a decision event for an external notifier.
// The request has already succeeded; a publish failure is only
// logged.
func (h *ReservationHandler) publishDecision(res model.Reservation) {
	if res.DecidedAt == nil || res.DecidedBy == nil {
		return
	}
	go func() {
		ctx := context.Background()
		room, err := h.Catalog.GetRoom(ctx, res.RoomID)
		if err != nil {
			log.Error().Err(err).Uint64("reservation_id", res.ID).Msg("decision event: room lookup failed")
			return
		}
		_ = queue_publisher.PublishReservationDecided(ctx, queue.ReservationDecidedEvent{
			ReservationID: res.ID,
			RoomID:        res.RoomID,
			RoomName:      room.Name,
			BuildingID:    room.BuildingID,
			RequesterID:   res.RequesterID,
			Date:          res.Date,
			Window:        res.Window.String(),
			Status:        res.Status.String(),
			DecidedBy:     *res.DecidedBy,
			Reason:        res.DecisionReason,
			DecidedAt:     res.DecidedAt.Format("2006-01-02 15:04:05"),
		})
	}()
}
