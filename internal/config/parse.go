package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a layout file. A missing file yields Default().
func Load(p string) (*File, error) {
	data, err := os.ReadFile(p) //nolint:gosec // path is the layout file path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates .baseliner.yaml content.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func validate(f *File) error {
	if f.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", f.Version)
	}
	seen := make(map[string]bool, len(f.ScanRoots))
	for i, r := range f.ScanRoots {
		label := fmt.Sprintf("scan_roots[%d]", i)
		if r.Path == "" {
			return fmt.Errorf("config: %s.path is required", label)
		}
		if err := validatePath(r.Path, label); err != nil {
			return err
		}
		key := filepath.ToSlash(filepath.Clean(r.Path))
		if seen[key] {
			return fmt.Errorf("config: duplicate scan root %q", r.Path)
		}
		seen[key] = true
	}
	for i, pat := range f.Exclude {
		if _, err := path.Match(pat, ""); err != nil {
			return fmt.Errorf("config: exclude[%d]: invalid pattern %q: %w", i, pat, err)
		}
	}
	return nil
}

// validatePath ensures a path is relative and does not escape the anchor.
func validatePath(p, label string) error {
	if filepath.IsAbs(p) {
		return fmt.Errorf("config: %s: absolute path is not allowed: %s", label, p)
	}
	cleaned := filepath.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("config: %s: path must not escape the anchor (contains ..): %s", label, p)
	}
	return nil
}
