package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveAtomic normalizes and validates cfg, then replaces path with it. The
// file it replaces is kept as path.bak.
func SaveAtomic(path string, cfg Config) error {
	normalized, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		return fmt.Errorf("config validation failed: %s", strings.Join(vr.Errors, "; "))
	}

	b, err := yaml.Marshal(&normalized)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return writeAtomic(path, b, true)
}

// writeAtomic writes b next to path and renames it into place.
func writeAtomic(path string, b []byte, backup bool) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if backup {
		bak := path + ".bak"
		_ = os.Remove(bak)
		if err := os.Rename(path, bak); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("backup %s: %w", path, err)
		}
	}
	return os.Rename(tmpName, path)
}
