package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/unibook/room-reservation/internal/config"
	"github.com/unibook/room-reservation/internal/model"
	"github.com/unibook/room-reservation/internal/repository"
	"github.com/unibook/room-reservation/internal/utils"
)

// CatalogHandler serves the building and room catalog. Browse and
// search endpoints are public; the create endpoints are restricted to
// the program office by route middleware.
type CatalogHandler struct {
	Cfg       config.Config
	Buildings *repository.BuildingRepo
	Rooms     *repository.RoomRepo
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(cfg config.Config, b *repository.BuildingRepo, r *repository.RoomRepo) *CatalogHandler {
	return &CatalogHandler{Cfg: cfg, Buildings: b, Rooms: r}
}

type buildingJSON struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	InchargeID uint64 `json:"incharge_id"`
}

func toBuildingJSON(b model.Building) buildingJSON {
	return buildingJSON{ID: b.ID, Name: b.Name, InchargeID: b.InchargeID}
}

// ListBuildings handles GET /v1/buildings.
func (h *CatalogHandler) ListBuildings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Buildings.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]buildingJSON, 0, len(list))
	for _, b := range list {
		out = append(out, toBuildingJSON(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// ListRooms handles GET /v1/rooms with optional building_id and
// room_type filters.
func (h *CatalogHandler) ListRooms(c echo.Context) error {
	var buildingID uint64
	if raw := c.QueryParam("building_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building_id"})
		}
		buildingID = id
	}
	var roomType model.RoomType
	if raw := c.QueryParam("room_type"); raw != "" {
		rt, ok := model.ParseRoomType(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room_type"})
		}
		roomType = rt
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.ListRooms(ctx, buildingID, roomType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toRoomListJSON(rooms)})
}

// ListRoomsByBuilding handles GET /v1/buildings/:id/rooms.
func (h *CatalogHandler) ListRoomsByBuilding(c echo.Context) error {
	buildingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || buildingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Buildings.GetByID(ctx, buildingID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "building not found"})
	}
	rooms, err := h.Rooms.ListRooms(ctx, buildingID, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toRoomListJSON(rooms)})
}

// SearchRooms handles GET /v1/rooms/search?query=...
func (h *CatalogHandler) SearchRooms(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("query"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.SearchByName(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toRoomListJSON(rooms)})
}

type createBuildingReq struct {
	Name             string `json:"name" validate:"required"`
	InchargeEmail    string `json:"incharge_email" validate:"required,email"`
	InchargeName     string `json:"incharge_name" validate:"required"`
	InchargePassword string `json:"incharge_password" validate:"required,min=8"`
}

// CreateBuilding handles POST /v1/admin/buildings. A building is
// registered together with its incharge account in one transaction.
func (h *CatalogHandler) CreateBuilding(c echo.Context) error {
	var req createBuildingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hash, err := utils.HashPassword(req.InchargePassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Buildings.CreateWithIncharge(ctx, req.Name, req.InchargeEmail, req.InchargeName, hash)
	if err != nil {
		switch err {
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "incharge email already exists"})
		case repository.ErrBuildingExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "building name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create building failed"})
	}
	return c.JSON(http.StatusCreated, toBuildingJSON(b))
}

type createRoomReq struct {
	BuildingID uint64 `json:"building_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	RoomType   string `json:"room_type" validate:"required"`
}

// CreateRoom handles POST /v1/admin/rooms.
func (h *CatalogHandler) CreateRoom(c echo.Context) error {
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	roomType, ok := model.ParseRoomType(req.RoomType)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room_type"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Buildings.GetByID(ctx, req.BuildingID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "building not found"})
	}
	id, err := h.Rooms.Create(ctx, req.BuildingID, req.Name, roomType)
	if err != nil {
		if err == repository.ErrRoomExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists in building"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	room, err := h.Rooms.GetRoom(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	return c.JSON(http.StatusCreated, roomJSON{
		ID: room.ID, BuildingID: room.BuildingID, Name: room.Name, RoomType: room.Type.String(),
	})
}
