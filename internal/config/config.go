package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. Booking policy fields make
// choices explicit that the engine would otherwise have to guess:
// whether past dates may be booked, how far ahead bookings may start,
// and how many rooms one availability search may return.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	AllowPastDates  bool // BOOKING_ALLOW_PAST: admit reservations for past dates
	HorizonDays     int  // BOOKING_HORIZON_DAYS: max days ahead a booking may start (0 = unlimited)
	SearchRoomLimit int  // SEARCH_ROOM_LIMIT: cap on rooms returned by one availability search
}

// Load reads configuration from the environment, after loading a .env
// file when one is present. Required variables are enforced by must()
// and missing values cause the program to exit with a fatal log
// message.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		AllowPastDates:  envBool("BOOKING_ALLOW_PAST", false),
		HorizonDays:     envInt("BOOKING_HORIZON_DAYS", 0),
		SearchRoomLimit: envInt("SEARCH_ROOM_LIMIT", 500),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer. If conversion fails, the application logs a fatal error
// and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
