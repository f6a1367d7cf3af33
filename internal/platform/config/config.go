// Package config provides environment-based configuration for the greeting
// service, the Go client and the page server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding variable is unset or invalid.
const (
	DefaultPort            = 3001
	DefaultAllowedOrigin   = "http://localhost:8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultGreetingURL     = "http://localhost:3001"
	DefaultElementID       = "APIcontent"
	DefaultWebPort         = 8080
)

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Service configures the greeting service.
type Service struct {
	// Port is the TCP port to listen on (PORT).
	Port int
	// AllowedOrigin is the single browser origin allowed to read responses (ALLOWED_ORIGIN).
	AllowedOrigin string
	// ShutdownTimeout bounds graceful shutdown (SHUTDOWN_TIMEOUT).
	ShutdownTimeout time.Duration
}

// Addr returns the listen address for Port on all interfaces.
func (s Service) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// Client configures the Go greeting client.
type Client struct {
	// GreetingURL is the absolute URL fetched once per load (GREETING_URL).
	GreetingURL string
	// ElementID identifies the element the greeting is written into (TARGET_ELEMENT_ID).
	ElementID string
}

// Web configures the server that hosts the browser client page.
type Web struct {
	// Port is the TCP port to listen on (WEB_PORT).
	Port int
	// GreetingURL is embedded in the page for the browser script (GREETING_URL).
	GreetingURL string
	// ShutdownTimeout bounds graceful shutdown (SHUTDOWN_TIMEOUT).
	ShutdownTimeout time.Duration
}

// Addr returns the listen address for Port on all interfaces.
func (w Web) Addr() string {
	return ":" + strconv.Itoa(w.Port)
}

// LoadDotEnv seeds the process environment from the given files, ".env" when
// none are named. Variables already set are kept. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// LoadService reads the service configuration from the process environment.
func LoadService() Service {
	return ServiceFrom(os.LookupEnv)
}

// ServiceFrom reads the service configuration through lookup.
func ServiceFrom(lookup LookupFunc) Service {
	return Service{
		Port:            getPort(lookup, "PORT", DefaultPort),
		AllowedOrigin:   getString(lookup, "ALLOWED_ORIGIN", DefaultAllowedOrigin),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}
}

// LoadClient reads the client configuration from the process environment.
func LoadClient() Client {
	return ClientFrom(os.LookupEnv)
}

// ClientFrom reads the client configuration through lookup.
func ClientFrom(lookup LookupFunc) Client {
	return Client{
		GreetingURL: getString(lookup, "GREETING_URL", DefaultGreetingURL),
		ElementID:   getString(lookup, "TARGET_ELEMENT_ID", DefaultElementID),
	}
}

// LoadWeb reads the page server configuration from the process environment.
func LoadWeb() Web {
	return WebFrom(os.LookupEnv)
}

// WebFrom reads the page server configuration through lookup.
func WebFrom(lookup LookupFunc) Web {
	return Web{
		Port:            getPort(lookup, "WEB_PORT", DefaultWebPort),
		GreetingURL:     getString(lookup, "GREETING_URL", DefaultGreetingURL),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}
}

func getString(lookup LookupFunc, key, defaultValue string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// getPort accepts decimal ports in 1..65535.
func getPort(lookup LookupFunc, key string, defaultValue int) int {
	value, ok := lookup(key)
	if !ok || value == "" {
		return defaultValue
	}
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return defaultValue
	}
	return port
}

func getDuration(lookup LookupFunc, key string, defaultValue time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
