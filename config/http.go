package config

import "time"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://catalog.example.com").
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// ReadTimeout and WriteTimeout bound request handling.
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT"  envDefault:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`

	// ShutdownTimeout bounds graceful shutdown on exit.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// RateLimitRPS caps per-client requests per second. Zero disables rate
	// limiting entirely.
	RateLimitRPS   float64 `env:"HTTP_RATE_LIMIT_RPS"   envDefault:"25"`
	RateLimitBurst int     `env:"HTTP_RATE_LIMIT_BURST" envDefault:"50"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 10 * time.Second
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 30 * time.Second
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
	if h.RateLimitRPS < 0 {
		h.RateLimitRPS = 0
	}
	if h.RateLimitRPS > 0 && h.RateLimitBurst < 1 {
		h.RateLimitBurst = int(h.RateLimitRPS)
	}
}
