package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Tree creates a temp directory containing the given relative directories and
// returns its canonical path.
func Tree(t *testing.T, dirs ...string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0755); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// Manifest writes an empty vcpkg.json into root/rel, creating rel if needed.
func Manifest(t *testing.T, root, rel string) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	data := []byte(`{"name": "` + filepath.Base(dir) + `", "dependencies": []}` + "\n")
	if err := os.WriteFile(filepath.Join(dir, "vcpkg.json"), data, 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}
