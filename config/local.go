package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalFileNames are the per-directory settings files, in lookup order.
var LocalFileNames = []string{".gridedit.toml", ".gridedit.json"}

// FindLocal searches from the directory of filePath upward for a local
// settings file and returns the closest one, or "" when there is none.
func FindLocal(filePath string) string {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return ""
	}
	dir := filepath.Dir(absPath)
	for {
		for _, name := range LocalFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// WithLocal returns a copy of c overlaid with the local settings file found
// for filePath. Settings the local file omits keep the values from c.
func (c *Config) WithLocal(filePath string) (*Config, string, error) {
	merged := *c
	path := FindLocal(filePath)
	if path == "" {
		return &merged, "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &merged, "", nil
		}
		return nil, path, err
	}
	if err := decode(path, data, &merged); err != nil {
		return nil, path, err
	}
	if err := merged.Validate(); err != nil {
		return nil, path, fmt.Errorf("%s: %w", path, err)
	}
	return &merged, path, nil
}
