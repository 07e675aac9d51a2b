package config

import (
	"strconv"
	"strings"
)

// OverlayEnv applies deployment overrides from the environment on top of
// the file config. Unset or malformed variables leave cfg untouched.
func OverlayEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = port
		}
	}
	if v := strings.TrimSpace(getenv("JOBSEARCH_DATA_DIR")); v != "" {
		cfg.App.DataDir = v
	}
	if v := strings.TrimSpace(getenv("CORS_ORIGINS")); v != "" {
		cfg.CORS.AllowedOrigins = strings.Split(v, ",")
	}
}
