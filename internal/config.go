package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host                 string        `env:"HOST,default=0.0.0.0"`
	Port                 int           `env:"PORT,default=3000"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	AdminAPIKey          string        `env:"ADMIN_API_KEY,required=true"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	SaveDelay            time.Duration `env:"SAVE_DELAY,default=1600ms"`
	FlushTimeout         time.Duration `env:"FLUSH_TIMEOUT,default=5s"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=256"`
	MaxMessageSize       int64         `env:"MAX_MESSAGE_SIZE,default=65536"`
	PresenceInterval     time.Duration `env:"PRESENCE_INTERVAL,default=30s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate rejects values the environment parser accepts but the server cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("PORT must be in 1..65535, got %d", c.Port)
	case c.SaveDelay <= 0:
		return fmt.Errorf("SAVE_DELAY must be positive, got %s", c.SaveDelay)
	case c.FlushTimeout <= 0:
		return fmt.Errorf("FLUSH_TIMEOUT must be positive, got %s", c.FlushTimeout)
	case c.ConnectionBufferSize <= 0:
		return fmt.Errorf("CONNECTION_BUFFER_SIZE must be positive, got %d", c.ConnectionBufferSize)
	case c.MaxMessageSize <= 0:
		return fmt.Errorf("MAX_MESSAGE_SIZE must be positive, got %d", c.MaxMessageSize)
	case c.PresenceInterval <= 0:
		return fmt.Errorf("PRESENCE_INTERVAL must be positive, got %s", c.PresenceInterval)
	}
	return nil
}
