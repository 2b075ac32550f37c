package main

import (
	"fmt"
	"path/filepath"

	"github.com/fbkclanna/baseliner/internal/config"
	"github.com/fbkclanna/baseliner/internal/project"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment and repository layout",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ok := true

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	// Check vcpkg.
	runner := e.runner(cmd)
	_, _ = fmt.Fprint(out, "Checking vcpkg... ")
	vcpkgPath, err := runner.Path()
	if err != nil {
		_, _ = fmt.Fprintln(out, "NOT FOUND")
		_, _ = fmt.Fprintln(out, "  vcpkg is required. Set VCPKG_ROOT, pass --vcpkg, or add it to PATH.")
		ok = false
	} else {
		_, _ = fmt.Fprintf(out, "found at %s\n", vcpkgPath)

		_, _ = fmt.Fprint(out, "Checking vcpkg version... ")
		ver, verr := runner.Version(cmd.Context())
		if verr != nil {
			_, _ = fmt.Fprintln(out, "ERROR")
			ok = false
		} else {
			_, _ = fmt.Fprintln(out, ver)
		}
	}

	// Check layout.
	_, _ = fmt.Fprintf(out, "Repository root: %s", e.layout.Anchor)
	if _, err := project.Resolve(e.layout.Anchor); err != nil {
		_, _ = fmt.Fprintln(out, " (MISSING)")
		ok = false
	} else if project.HasManifest(e.layout.Anchor) {
		_, _ = fmt.Fprintf(out, " (has %s)\n", project.ManifestName)
	} else {
		_, _ = fmt.Fprintln(out, "")
	}

	for _, sr := range e.layout.ScanRoots {
		if !checkScanRoot(cmd, e, sr) {
			ok = false
		}
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// checkScanRoot reports a scan root and its project count. Missing optional
// roots are not failures.
func checkScanRoot(cmd *cobra.Command, e *env, sr config.ScanRoot) bool {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "  Checking %s... ", sr.Path)
	dir := filepath.Join(e.layout.Anchor, filepath.FromSlash(sr.Path))
	dirs, err := project.Discover(dir, project.DiscoverOpts{
		Exclude: e.layout.Exclude,
		OnUnreadable: func(path string, err error) {
			e.logger.Warn("skipping unreadable directory", "path", path, "err", err)
		},
	})
	if err != nil {
		if sr.Optional {
			_, _ = fmt.Fprintln(out, "missing (optional)")
			return true
		}
		_, _ = fmt.Fprintf(out, "FAILED (%v)\n", err)
		return false
	}
	_, _ = fmt.Fprintf(out, "%d projects\n", len(dirs))
	return true
}
