package httpserver

import "time"

// Config holds the listener settings of the serve command.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`          // Listen address.
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`    // Whole request, body included.
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`   // Must cover the slowest async check.
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`   // Keep-alive idle time.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"` // Grace period for in-flight requests.
}
