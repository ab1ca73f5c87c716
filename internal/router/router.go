package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/unibook/room-reservation/internal/config"
	"github.com/unibook/room-reservation/internal/handler"
	"github.com/unibook/room-reservation/internal/middleware"
	"github.com/unibook/room-reservation/internal/model"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth          *handler.AuthHandler
	Availability  *handler.AvailabilityHandler
	Reservations  *handler.ReservationHandler
	Catalog       *handler.CatalogHandler
	Announcements *handler.AnnouncementHandler
}

// Register wires all routes onto the Echo instance. Public browse
// endpoints carry the Redis response cache; everything carries the
// token-bucket rate limiter. Both middlewares degrade to pass-through
// when Redis is unavailable.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e.Use(rl)
	e.GET("/healthz", handler.Health)

	// Session endpoints. No token required; login and register issue
	// the first pair, refresh rotates it.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// Public browse: buildings, rooms and announcements are visible
	// without a session so anyone can look before registering.
	e.GET("/v1/buildings", h.Catalog.ListBuildings, cache)
	e.GET("/v1/buildings/:id/rooms", h.Catalog.ListRoomsByBuilding, cache)
	e.GET("/v1/rooms", h.Catalog.ListRooms, cache)
	e.GET("/v1/rooms/search", h.Catalog.SearchRooms, cache)
	e.GET("/v1/announcements", h.Announcements.List, cache)

	// Everything below requires a valid access token.
	v1 := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	v1.GET("/me", h.Auth.Me)
	v1.GET("/availability", h.Availability.Search, cache)

	v1.POST("/reservations", h.Reservations.Create)
	v1.GET("/reservations", h.Reservations.List)
	v1.POST("/reservations/:id/cancel", h.Reservations.Cancel)

	// Decisions are restricted to the approval roles; the workflow
	// additionally checks that the actor's role matches the room type
	// and, for breakout rooms, the building.
	decide := v1.Group("", middleware.RequireRole(model.RoleBuildingIncharge, model.RoleProgramOffice))
	decide.POST("/reservations/:id/approve", h.Reservations.Approve)
	decide.POST("/reservations/:id/reject", h.Reservations.Reject)

	// Catalog administration is program office only.
	admin := v1.Group("/admin", middleware.RequireRole(model.RoleProgramOffice))
	admin.POST("/buildings", h.Catalog.CreateBuilding)
	admin.POST("/rooms", h.Catalog.CreateRoom)
	admin.POST("/announcements", h.Announcements.Create)
}
