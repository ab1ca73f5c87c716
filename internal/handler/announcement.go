package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/unibook/room-reservation/internal/model"
	"github.com/unibook/room-reservation/internal/repository"
)

// AnnouncementHandler serves campus notices. Listing is public;
// posting is restricted to the program office by route middleware.
type AnnouncementHandler struct {
	Repo *repository.AnnouncementRepo
}

// NewAnnouncementHandler constructs an AnnouncementHandler.
func NewAnnouncementHandler(repo *repository.AnnouncementRepo) *AnnouncementHandler {
	return &AnnouncementHandler{Repo: repo}
}

type announcementJSON struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	PostedBy   uint64    `json:"posted_by"`
	BuildingID *uint64   `json:"building_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toAnnouncementListJSON(list []model.Announcement) []announcementJSON {
	out := make([]announcementJSON, 0, len(list))
	for _, a := range list {
		out = append(out, announcementJSON{
			ID: a.ID, Title: a.Title, Body: a.Body,
			PostedBy: a.PostedBy, BuildingID: a.BuildingID, CreatedAt: a.CreatedAt,
		})
	}
	return out
}

// List handles GET /v1/announcements. An optional building_id filter
// narrows the result to campus-wide notices plus that building's.
func (h *AnnouncementHandler) List(c echo.Context) error {
	var buildingID *uint64
	if raw := c.QueryParam("building_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building_id"})
		}
		buildingID = &id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Repo.ListVisible(ctx, buildingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toAnnouncementListJSON(list)})
}

type createAnnouncementReq struct {
	Title      string  `json:"title" validate:"required"`
	Body       string  `json:"body" validate:"required"`
	BuildingID *uint64 `json:"building_id"`
}

// Create handles POST /v1/admin/announcements. A nil building_id posts
// a campus-wide notice.
func (h *AnnouncementHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createAnnouncementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Body = strings.TrimSpace(req.Body)
	if req.Title == "" || req.Body == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and body required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Repo.Create(ctx, req.Title, req.Body, uid, req.BuildingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create announcement failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}
