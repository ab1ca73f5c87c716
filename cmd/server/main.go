package main // Entry point package

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unibook/room-reservation/internal/booking"
	"github.com/unibook/room-reservation/internal/config"
	"github.com/unibook/room-reservation/internal/database"
	"github.com/unibook/room-reservation/internal/handler"
	"github.com/unibook/room-reservation/internal/queue"
	"github.com/unibook/room-reservation/internal/repository"
	"github.com/unibook/room-reservation/internal/router"
)

func main() {
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	dsn := database.MigrationDSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err := database.Migrate("migrations", dsn); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	buildings := repository.NewBuildingRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	announcements := repository.NewAnnouncementRepo(db)

	policy := booking.Policy{AllowPastDates: cfg.AllowPastDates, HorizonDays: cfg.HorizonDays}
	availability := booking.NewAvailability(reservations, rooms, cfg.SearchRoomLimit)
	admission := booking.NewAdmission(reservations, rooms, policy, time.Now)
	workflow := booking.NewWorkflow(reservations, rooms, time.Now)
	history := booking.NewHistory(reservations)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, cache and rate limiting disabled")
	}

	router.Register(e, cfg, router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users, tokens),
		Availability:  handler.NewAvailabilityHandler(availability),
		Reservations:  handler.NewReservationHandler(admission, workflow, history, rooms),
		Catalog:       handler.NewCatalogHandler(cfg, buildings, rooms),
		Announcements: handler.NewAnnouncementHandler(announcements),
	}, rdb)

	go func() {
		if err := queue.StartDecisionConsumer(); err != nil {
			log.Error().Err(err).Msg("decision consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
