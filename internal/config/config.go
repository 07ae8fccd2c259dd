package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Optional fields degrade a feature when
// empty instead of failing startup: an empty JWTSecret disables the
// role-based gate (every request is then treated as allowed, matching
// the default policy), and an empty AdminUser disables the admin
// vacancy endpoints entirely.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // optional secret for the role-based authorization gate
	AdminUser     string // optional basic-auth user for admin vacancy endpoints
	AdminPassHash string // bcrypt hash of the admin password
	PageSize      int    // default reservations page size
	QueueEnabled  bool   // start the booking.confirmed consumer and publish events
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing
// values cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:           must("APP_ENV"),                // environment (dev/test/prod)
		Port:          must("APP_PORT"),               // port to bind the HTTP server
		DBUser:        must("DB_USER"),                // database user
		DBPass:        os.Getenv("DB_PASS"),           // database password (empty allowed)
		DBHost:        must("DB_HOST"),                // database host
		DBPort:        must("DB_PORT"),                // database port
		DBName:        must("DB_NAME"),                // database name
		JWTSecret:     os.Getenv("JWT_SECRET"),        // empty disables the role gate
		AdminUser:     os.Getenv("ADMIN_USER"),        // empty disables admin endpoints
		AdminPassHash: os.Getenv("ADMIN_PASS_HASH"),   // bcrypt hash, required with ADMIN_USER
		PageSize:      optInt("PAGE_SIZE", 15),        // default page size for listings
		QueueEnabled:  envBool("QUEUE_ENABLED", false), // broker integration off by default
	}
	if cfg.AdminUser != "" && cfg.AdminPassHash == "" {
		log.Fatalf("ADMIN_USER is set but ADMIN_PASS_HASH is missing")
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 15
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// optInt reads an optional integer variable, falling back to def when
// the variable is unset or malformed.
func optInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int for %s: %q, using %d", key, v, def)
		return def
	}
	return n
}
