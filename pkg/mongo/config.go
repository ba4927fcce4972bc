package mongo

import "time"

// Config describes the MongoDB backend of the async checks. An empty URL
// disables the backend.
type Config struct {
	ConnectionURL   string        `env:"MONGODB_URL"`                                  // mongodb://localhost:27017
	Database        string        `env:"MONGODB_DATABASE" envDefault:"app"`            // Database holding the checked collections.
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`     // Timeout of a single connection attempt.
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"50"`        // Pool size; async checks run in parallel.
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"` // Idle connections older than this are closed.
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"2s"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
