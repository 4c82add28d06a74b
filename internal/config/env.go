package config

import "os"

// Environment variables read by parseEnv.
const (
	EnvURL      = "DAPNET_URL"
	EnvUsername = "DAPNET_USERNAME"
	EnvPassword = "DAPNET_PASSWORD"
)

// parseEnv overlays credentials and the API URL from the environment.
// Unset or empty variables leave the current values alone.
func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvUsername); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
}
