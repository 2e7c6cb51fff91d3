package config // package config loads application configuration from environment variables

import (
    "log"  // log is used to report configuration errors and halt execution
    "os"   // os provides access to environment variables
    "time" // time resolves the restaurant timezone
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The restaurant timezone drives day
// boundaries and hour buckets in the analytics queries; all timestamps
// are stored in UTC and converted on aggregation.
type Config struct {
    Env      string         // application environment (e.g. "dev", "prod")
    Port     string         // HTTP port to listen on
    DBUser   string         // database username
    DBPass   string         // database password (optional)
    DBHost   string         // database host address
    DBPort   string         // database port number
    DBName   string         // database name
    AMQPURL  string         // RabbitMQ URL for change notifications (optional)
    Location *time.Location // restaurant-local timezone for analytics
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:      must("APP_ENV"),           // environment (dev/test/prod)
        Port:     must("APP_PORT"),          // port to bind the HTTP server
        DBUser:   must("DB_USER"),           // database user
        DBPass:   os.Getenv("DB_PASS"),      // database password (empty allowed)
        DBHost:   must("DB_HOST"),           // database host
        DBPort:   must("DB_PORT"),           // database port
        DBName:   must("DB_NAME"),           // database name
        AMQPURL:  os.Getenv("RABBITMQ_URL"), // broker URL (empty uses the local default)
        Location: mustLocation("RESTAURANT_TZ"),
    }
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustLocation resolves an IANA timezone name from the environment,
// defaulting to UTC when unset. An unknown name is fatal so a typo
// cannot silently shift every analytics bucket.
func mustLocation(key string) *time.Location {
    name, ok := os.LookupEnv(key)
    if !ok || name == "" {
        return time.UTC
    }
    loc, err := time.LoadLocation(name)
    if err != nil {
        log.Fatalf("invalid timezone for %s: %q", key, name)
    }
    return loc
}
