package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables via caarlos0/env,
// using the env/envPrefix tags declared on StructuredConfig.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	// the JSON file path field is unexported, env.Parse skips it
	if path := os.Getenv("CONFIG"); path != "" {
		cfg.jsonFilePath = path
	}

	return nil
}
