// Package config loads the configuration of the budget engine server from
// environment variables. A .env file in the working directory is read first
// if it exists, variables already set in the environment take precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/envelope-zero/budget-engine/internal/database"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/joho/godotenv"
)

var (
	ErrAPIURLMissing = errors.New("the API_URL environment variable must be set")
	ErrAPIURLInvalid = errors.New("the API_URL environment variable is not a valid URL")
	ErrPortInvalid   = errors.New("the PORT environment variable must be a port number")
	ErrGinMode       = errors.New("the GIN_MODE environment variable must be one of debug, release or test")
)

// Config is the configuration of the server.
type Config struct {
	URL      *url.URL // Public URL of the API, used for links and the API documentation
	Port     int
	GinMode  string
	LogHuman bool // Log in a human readable format instead of JSON

	DBPath   string                  // Path of the SQLite database
	Postgres database.PostgresConfig // Used instead of SQLite if the host is set

	Currency     string
	AllowOrigins []string // CORS origins, CORS is disabled when empty
	EnablePprof  bool
}

// Load reads the .env file, if any, and returns the configuration from the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv returns the configuration from the environment.
func FromEnv() (Config, error) {
	apiURL, ok := os.LookupEnv("API_URL")
	if !ok || apiURL == "" {
		return Config{}, ErrAPIURLMissing
	}

	u, err := url.Parse(strings.TrimSuffix(apiURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("%w: %s", ErrAPIURLInvalid, apiURL)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port < 1 || port > 65535 {
		return Config{}, ErrPortInvalid
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode := getEnv("GIN_MODE", "release")
	if ginMode != "debug" && ginMode != "release" && ginMode != "test" {
		return Config{}, ErrGinMode
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for debug mode
	// and JSON otherwise
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	logHuman := (!ok && ginMode == "debug") || (ok && logFormat == "human")

	currency := getEnv("BUDGET_CURRENCY", "EUR")
	if _, err := money.ParseCurrency(currency); err != nil {
		return Config{}, err
	}

	return Config{
		URL:      u,
		Port:     port,
		GinMode:  ginMode,
		LogHuman: logHuman,
		DBPath:   getEnv("DB_PATH", "data/budget.db"),
		Postgres: database.PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "budget"),
		},
		Currency:     strings.ToUpper(currency),
		AllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:  getEnvAsBool("ENABLE_PPROF", false),
	}, nil
}

// Address is the address the server listens on.
func (c Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
