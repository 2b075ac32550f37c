package project

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// DiscoverOpts configures a recursive scan.
type DiscoverOpts struct {
	// Exclude holds path.Match patterns tested against the slash-separated
	// path relative to the scan root. Matching directories are neither
	// processed nor descended into.
	Exclude []string
	// OnUnreadable, if set, is told about descendants that could not be
	// read. They are skipped and the scan continues.
	OnUnreadable func(path string, err error)
}

// Discover returns every descendant directory of root that contains a
// manifest, in lexicographic path order. root itself is not included.
// Names are the slash-separated paths relative to root.
//
// A symlink to a directory is a candidate but is not descended into.
// Descendants that cannot be read are skipped; only an unreadable root fails.
func Discover(root string, opts DiscoverOpts) ([]Directory, error) {
	root, err := Resolve(root)
	if err != nil {
		return nil, err
	}
	if err := validatePatterns(opts.Exclude); err != nil {
		return nil, err
	}

	var found []Directory
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == root || d == nil {
				return walkErr
			}
			if opts.OnUnreadable != nil {
				opts.OnUnreadable(p, walkErr)
			}
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == root {
			return nil
		}
		isDir := d.IsDir()
		if !isDir && d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(p); err == nil && info.IsDir() {
				isDir = true
			}
		}
		if !isDir {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if excluded(rel, opts.Exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if HasManifest(p) {
			found = append(found, Directory{Path: p, Name: rel})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return found, nil
}

func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
	}
	return nil
}

// excluded matches patterns against the full relative path and its base
// name, so "build" also excludes "a/build".
func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, rel); ok {
			return true
		}
		if ok, _ := path.Match(p, path.Base(rel)); ok {
			return true
		}
	}
	return false
}
