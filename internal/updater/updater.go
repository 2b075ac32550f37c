package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fbkclanna/baseliner/internal/config"
	"github.com/fbkclanna/baseliner/internal/project"
	"github.com/fbkclanna/baseliner/internal/vcpkg"
)

// AnchorScanRoot labels the anchor's own project in Targets.
const AnchorScanRoot = "."

// Runner runs the baseline update in one directory.
type Runner interface {
	UpdateBaseline(ctx context.Context, dir string, opts vcpkg.UpdateOpts) error
}

// HeaderPrinter announces a project before it is updated.
type HeaderPrinter interface {
	Header(name string)
}

// Target is a project a run visits, tagged with the scan root it came from.
type Target struct {
	ScanRoot string
	project.Directory
}

// Updater updates vcpkg baselines one project at a time.
type Updater struct {
	Runner  Runner
	Printer HeaderPrinter
	Logger  *log.Logger

	// Opts is passed to every vcpkg invocation.
	Opts vcpkg.UpdateOpts
	// DryRun prints headers without invoking vcpkg.
	DryRun bool
	// Exclude is applied to recursive scans, see project.DiscoverOpts.
	Exclude []string
	// OnProject, if set, is called after each project with the outcome.
	OnProject func(t Target, err error)
}

// New returns an Updater that writes headers with p and runs r.
func New(r Runner, p HeaderPrinter) *Updater {
	return &Updater{Runner: r, Printer: p}
}

// UpdateSingle updates the project in dir. If dir has no vcpkg.json it
// returns nil without output. name defaults to the directory's base name.
func (u *Updater) UpdateSingle(ctx context.Context, dir, name string) error {
	return u.updateSingle(ctx, AnchorScanRoot, dir, name)
}

// UpdateRecursive updates every project below root in sorted path order,
// labelled with its path relative to root.
func (u *Updater) UpdateRecursive(ctx context.Context, root string) error {
	return u.updateRecursive(ctx, root, root)
}

// Run updates the anchor's own project (if enabled) and then each scan root
// in order. A missing scan root is an error unless marked optional.
func (u *Updater) Run(ctx context.Context, l config.Layout) error {
	if l.RootProject {
		if err := u.updateSingle(ctx, AnchorScanRoot, l.Anchor, project.RootName); err != nil {
			return err
		}
	}
	for _, sr := range l.ScanRoots {
		dir := scanRootDir(l.Anchor, sr)
		if sr.Optional && !exists(dir) {
			u.logger().Warn("skipping optional scan root", "path", sr.Path)
			continue
		}
		if err := u.updateRecursive(ctx, sr.Path, dir); err != nil {
			return err
		}
	}
	return nil
}

// Plan returns the projects Run would update, in order, without side effects.
func (u *Updater) Plan(l config.Layout) ([]Target, error) {
	var targets []Target
	if l.RootProject {
		anchor, err := project.Resolve(l.Anchor)
		if err != nil {
			return nil, err
		}
		if project.HasManifest(anchor) {
			targets = append(targets, Target{
				ScanRoot:  AnchorScanRoot,
				Directory: project.Directory{Path: anchor, Name: project.RootName},
			})
		}
	}
	for _, sr := range l.ScanRoots {
		dir := scanRootDir(l.Anchor, sr)
		if sr.Optional && !exists(dir) {
			continue
		}
		dirs, err := project.Discover(dir, u.discoverOpts())
		if err != nil {
			return nil, err
		}
		for _, d := range dirs {
			targets = append(targets, Target{ScanRoot: sr.Path, Directory: d})
		}
	}
	return targets, nil
}

func (u *Updater) updateRecursive(ctx context.Context, scanRoot, root string) error {
	dirs, err := project.Discover(root, u.discoverOpts())
	if err != nil {
		return err
	}
	u.logger().Debug("scanned", "root", root, "projects", len(dirs))
	for _, d := range dirs {
		if err := u.updateSingle(ctx, scanRoot, d.Path, d.Name); err != nil {
			return err
		}
	}
	return nil
}

func (u *Updater) updateSingle(ctx context.Context, scanRoot, dir, name string) error {
	resolved, err := project.Resolve(dir)
	if err != nil {
		return err
	}
	if !project.HasManifest(resolved) {
		u.logger().Debug("no manifest, skipping", "dir", resolved)
		return nil
	}

	t := Target{ScanRoot: scanRoot, Directory: project.Directory{Path: resolved, Name: name}}
	if u.Printer != nil {
		u.Printer.Header(t.Label())
	}

	if u.DryRun {
		u.logger().Info("dry run, not invoking vcpkg", "dir", resolved)
		u.notify(t, nil)
		return nil
	}

	u.logger().Debug("updating baseline", "dir", resolved)
	err = u.Runner.UpdateBaseline(ctx, resolved, u.Opts)
	u.notify(t, err)
	if err != nil {
		var ee *vcpkg.ExitError
		if errors.As(err, &ee) {
			return err
		}
		return fmt.Errorf("updating %s: %w", t.Label(), err)
	}
	return nil
}

func (u *Updater) discoverOpts() project.DiscoverOpts {
	return project.DiscoverOpts{
		Exclude: u.Exclude,
		OnUnreadable: func(path string, err error) {
			u.logger().Warn("skipping unreadable directory", "path", path, "err", err)
		},
	}
}

func (u *Updater) notify(t Target, err error) {
	if u.OnProject != nil {
		u.OnProject(t, err)
	}
}

func (u *Updater) logger() *log.Logger {
	if u.Logger == nil {
		u.Logger = log.New(io.Discard)
	}
	return u.Logger
}

func scanRootDir(anchor string, sr config.ScanRoot) string {
	return filepath.Join(anchor, filepath.FromSlash(sr.Path))
}

func exists(dir string) bool {
	_, err := project.Resolve(dir)
	return err == nil
}
