package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_BOARD_URL is the base websocket url of a running board, e.g. ws://localhost:3000
	BoardURL    string `envconfig:"E2E_BOARD_URL"`
	AdminAPIKey string `envconfig:"ADMIN_API_KEY"`
	// E2E_DEBUG_JSON dumps every envelope exchanged
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
