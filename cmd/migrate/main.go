package main // Standalone migration runner

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/unibook/room-reservation/internal/config"
	"github.com/unibook/room-reservation/internal/database"
)

// Applies schema migrations without starting the server. Usage:
//
//	migrate up
//	migrate down
func main() {
	dir := "up"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	cfg := config.Load()
	dsn := database.MigrationDSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	switch dir {
	case "up":
		err = database.Migrate("migrations", dsn)
	case "down":
		err = database.MigrateDown("migrations", dsn)
	default:
		log.Fatal().Str("arg", dir).Msg("expected up or down")
	}
	if err != nil {
		log.Fatal().Err(err).Str("direction", dir).Msg("migration failed")
	}
	log.Info().Str("direction", dir).Msg("migrations applied")
}
