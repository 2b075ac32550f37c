package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the file whose presence marks a directory as a vcpkg project.
const ManifestName = "vcpkg.json"

// RootName is the display name used for the anchor directory's own project.
const RootName = "root"

// ErrNotADirectory is returned when a path does not exist or is not a directory.
var ErrNotADirectory = errors.New("not a directory")

// Directory is a project directory found during a scan.
type Directory struct {
	Path string // absolute, symlinks resolved
	Name string // display name
}

// Label returns the display name, falling back to the directory's base name.
func (d Directory) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return filepath.Base(d.Path)
}

// Resolve returns the absolute canonical form of dir. It fails with
// ErrNotADirectory if dir does not exist or is not a directory.
func Resolve(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", abs, ErrNotADirectory)
		}
		return "", fmt.Errorf("resolving %s: %w", abs, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%s: %w", resolved, ErrNotADirectory)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", resolved, ErrNotADirectory)
	}
	return resolved, nil
}

// HasManifest reports whether dir contains a vcpkg.json file.
// The manifest is never read. A directory named vcpkg.json does not
// count, although a bare existence check would have accepted it.
func HasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestName))
	if err != nil {
		return false
	}
	return !info.IsDir()
}
