// Package api provides the HTTP front-end for the search engine.
package api

import "time"

// Config holds API server configuration. RateLimit mirrors the RATE_LIMIT
// environment variable of spec.md §6; the CLI layer is responsible for
// reading configuration into a Config.
type Config struct {
	Host            string
	Port            int
	EnableCORS      bool
	CORSOrigins     []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RateLimit       float64 // requests per minute per client IP
	RateBurst       int
	Production      bool // set gin.ReleaseMode
}

// DefaultConfig returns sensible defaults for the API server.
var DefaultConfig = Config{
	Host:            "localhost",
	Port:            8080,
	EnableCORS:      true,
	CORSOrigins:     []string{"*"},
	ReadTimeout:     30 * time.Second,
	WriteTimeout:    30 * time.Second,
	ShutdownTimeout: 10 * time.Second,
	RateLimit:       60.0,
	RateBurst:       20,
	Production:      false,
}
