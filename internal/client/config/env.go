package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config with SSP_-prefixed environment variables.
// Unset variables leave the existing values untouched. Malformed values
// panic, consistent with the other config sources.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
