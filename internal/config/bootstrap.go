package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserConfigName is the config file kept in the data dir.
const UserConfigName = "config.yml"

// EnsureUserConfig returns the path of the user config in dataDir, seeding
// it on first run from the bundled file at defaultPath. When the bundled
// file is absent the built-in defaults are written instead.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, UserConfigName)

	switch _, err := os.Stat(userPath); {
	case err == nil:
		return userPath, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", err
	}

	seed, err := bundledDefault(defaultPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}
	if err := writeAtomic(userPath, seed, false); err != nil {
		return "", fmt.Errorf("seed %s: %w", userPath, err)
	}
	return userPath, nil
}

func bundledDefault(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return yaml.Marshal(Default())
	}
	if err != nil {
		return nil, fmt.Errorf("read default config: %w", err)
	}

	var probe Config
	if err := yaml.Unmarshal(b, &probe); err != nil {
		return nil, fmt.Errorf("default config %s: %w", path, err)
	}
	return b, nil
}
