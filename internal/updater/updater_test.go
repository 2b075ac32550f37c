package updater

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/baseliner/internal/config"
	"github.com/fbkclanna/baseliner/internal/project"
	"github.com/fbkclanna/baseliner/internal/testutil"
	"github.com/fbkclanna/baseliner/internal/ui"
	"github.com/fbkclanna/baseliner/internal/vcpkg"
)

// stubRunner records directories and fails in the ones listed in fail.
type stubRunner struct {
	dirs []string
	fail map[string]int
}

func (s *stubRunner) UpdateBaseline(_ context.Context, dir string, _ vcpkg.UpdateOpts) error {
	s.dirs = append(s.dirs, dir)
	if code, ok := s.fail[dir]; ok {
		return &vcpkg.ExitError{Dir: dir, Args: []string{"x-update-baseline"}, Code: code}
	}
	return nil
}

func newTestUpdater() (*Updater, *stubRunner, *bytes.Buffer) {
	var buf bytes.Buffer
	r := &stubRunner{fail: map[string]int{}}
	return New(r, ui.NewPrinter(&buf)), r, &buf
}

func headers(out string) []string {
	var hs []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "== ") {
			hs = append(hs, strings.TrimSuffix(strings.TrimPrefix(line, "== "), " =="))
		}
	}
	return hs
}

func TestUpdateSingle_noManifest(t *testing.T) {
	u, r, buf := newTestUpdater()
	dir := testutil.Tree(t)

	if err := u.UpdateSingle(context.Background(), dir, "x"); err != nil {
		t.Fatalf("UpdateSingle() error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("output = %q, want none", buf.String())
	}
	if len(r.dirs) != 0 {
		t.Errorf("runner called %d times, want 0", len(r.dirs))
	}
}

func TestUpdateSingle_withManifest(t *testing.T) {
	u, r, buf := newTestUpdater()
	root := testutil.Tree(t)
	testutil.Manifest(t, root, "engine")
	dir := filepath.Join(root, "engine")

	if err := u.UpdateSingle(context.Background(), dir, ""); err != nil {
		t.Fatalf("UpdateSingle() error: %v", err)
	}
	if got := buf.String(); got != "\n== engine ==\n" {
		t.Errorf("output = %q", got)
	}
	if len(r.dirs) != 1 || r.dirs[0] != dir {
		t.Errorf("runner dirs = %v, want [%s]", r.dirs, dir)
	}
}

func TestUpdateSingle_displayName(t *testing.T) {
	u, _, buf := newTestUpdater()
	root := testutil.Tree(t)
	testutil.Manifest(t, root, ".")

	if err := u.UpdateSingle(context.Background(), root, "root"); err != nil {
		t.Fatalf("UpdateSingle() error: %v", err)
	}
	if got := headers(buf.String()); len(got) != 1 || got[0] != "root" {
		t.Errorf("headers = %v, want [root]", got)
	}
}

func TestUpdateSingle_resolvesPath(t *testing.T) {
	u, r, _ := newTestUpdater()
	root := testutil.Tree(t, "other")
	testutil.Manifest(t, root, "engine")

	dir := filepath.Join(root, "other", "..", "engine")
	if err := u.UpdateSingle(context.Background(), dir, ""); err != nil {
		t.Fatalf("UpdateSingle() error: %v", err)
	}
	if want := filepath.Join(root, "engine"); len(r.dirs) != 1 || r.dirs[0] != want {
		t.Errorf("runner dirs = %v, want [%s]", r.dirs, want)
	}
}

func TestMissingDirectory(t *testing.T) {
	missing := filepath.Join(testutil.Tree(t), "missing")

	t.Run("single", func(t *testing.T) {
		u, r, _ := newTestUpdater()
		err := u.UpdateSingle(context.Background(), missing, "")
		if !errors.Is(err, project.ErrNotADirectory) {
			t.Fatalf("error = %v, want ErrNotADirectory", err)
		}
		if len(r.dirs) != 0 {
			t.Error("runner should not be called")
		}
	})
	t.Run("recursive", func(t *testing.T) {
		u, r, _ := newTestUpdater()
		err := u.UpdateRecursive(context.Background(), missing)
		if !errors.Is(err, project.ErrNotADirectory) {
			t.Fatalf("error = %v, want ErrNotADirectory", err)
		}
		if len(r.dirs) != 0 {
			t.Error("runner should not be called")
		}
	})
}

func TestUpdateRecursive_sortedWithRelativeNames(t *testing.T) {
	u, r, buf := newTestUpdater()
	root := testutil.Tree(t, "a/b")
	testutil.Manifest(t, root, "c")
	testutil.Manifest(t, root, "a")

	if err := u.UpdateRecursive(context.Background(), root); err != nil {
		t.Fatalf("UpdateRecursive() error: %v", err)
	}
	if got := headers(buf.String()); strings.Join(got, ",") != "a,c" {
		t.Errorf("headers = %v, want [a c]", got)
	}
	want := []string{filepath.Join(root, "a"), filepath.Join(root, "c")}
	if strings.Join(r.dirs, ",") != strings.Join(want, ",") {
		t.Errorf("runner dirs = %v, want %v", r.dirs, want)
	}
}

func TestUpdateRecursive_nestedName(t *testing.T) {
	u, _, buf := newTestUpdater()
	root := testutil.Tree(t)
	testutil.Manifest(t, root, "libs/net")

	if err := u.UpdateRecursive(context.Background(), root); err != nil {
		t.Fatal(err)
	}
	if got := headers(buf.String()); len(got) != 1 || got[0] != "libs/net" {
		t.Errorf("headers = %v, want [libs/net]", got)
	}
}

func TestUpdateRecursive_stopsAtFirstFailure(t *testing.T) {
	u, r, buf := newTestUpdater()
	root := testutil.Tree(t)
	for _, p := range []string{"a", "b", "c"} {
		testutil.Manifest(t, root, p)
	}
	r.fail[filepath.Join(root, "b")] = 2

	err := u.UpdateRecursive(context.Background(), root)
	var ee *vcpkg.ExitError
	if !errors.As(err, &ee) || ee.Code != 2 {
		t.Fatalf("error = %v, want *vcpkg.ExitError with code 2", err)
	}
	if len(r.dirs) != 2 {
		t.Errorf("runner called %d times, want 2: %v", len(r.dirs), r.dirs)
	}
	if got := headers(buf.String()); strings.Join(got, ",") != "a,b" {
		t.Errorf("headers = %v, want [a b]", got)
	}
}

func TestUpdateRecursive_exclude(t *testing.T) {
	u, r, _ := newTestUpdater()
	u.Exclude = []string{"vcpkg_installed"}
	root := testutil.Tree(t)
	testutil.Manifest(t, root, "app")
	testutil.Manifest(t, root, "app/vcpkg_installed/x")

	if err := u.UpdateRecursive(context.Background(), root); err != nil {
		t.Fatal(err)
	}
	if len(r.dirs) != 1 {
		t.Errorf("runner dirs = %v, want only app", r.dirs)
	}
}

func layoutFixture(t *testing.T) string {
	t.Helper()
	anchor := testutil.Tree(t)
	testutil.Manifest(t, anchor, ".")
	testutil.Manifest(t, anchor, "projects/x")
	testutil.Manifest(t, anchor, "bitloop/examples/y")
	return anchor
}

func TestRun_fixedOrder(t *testing.T) {
	u, r, buf := newTestUpdater()
	anchor := layoutFixture(t)

	if err := u.Run(context.Background(), config.Default().Layout(anchor)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := headers(buf.String()); strings.Join(got, ",") != "root,x,y" {
		t.Errorf("headers = %v, want [root x y]", got)
	}
	want := []string{
		anchor,
		filepath.Join(anchor, "projects", "x"),
		filepath.Join(anchor, "bitloop", "examples", "y"),
	}
	if strings.Join(r.dirs, ",") != strings.Join(want, ",") {
		t.Errorf("runner dirs = %v, want %v", r.dirs, want)
	}
}

func TestRun_missingScanRoot(t *testing.T) {
	u, r, _ := newTestUpdater()
	anchor := testutil.Tree(t)
	testutil.Manifest(t, anchor, ".")
	testutil.Manifest(t, anchor, "projects/x")

	err := u.Run(context.Background(), config.Default().Layout(anchor))
	if !errors.Is(err, project.ErrNotADirectory) {
		t.Fatalf("error = %v, want ErrNotADirectory", err)
	}
	if len(r.dirs) != 2 {
		t.Errorf("runner called %d times, want 2 (root, x)", len(r.dirs))
	}
}

func TestRun_optionalScanRoot(t *testing.T) {
	u, r, _ := newTestUpdater()
	anchor := testutil.Tree(t)
	testutil.Manifest(t, anchor, "projects/x")

	l := config.Layout{
		Anchor:      anchor,
		RootProject: true,
		ScanRoots:   []config.ScanRoot{{Path: "projects"}, {Path: "bitloop/examples", Optional: true}},
	}
	if err := u.Run(context.Background(), l); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(r.dirs) != 1 {
		t.Errorf("runner dirs = %v, want only projects/x", r.dirs)
	}
}

func TestRun_rootProjectDisabled(t *testing.T) {
	u, r, buf := newTestUpdater()
	anchor := layoutFixture(t)

	l := config.Default().Layout(anchor)
	l.RootProject = false
	if err := u.Run(context.Background(), l); err != nil {
		t.Fatal(err)
	}
	if got := headers(buf.String()); strings.Join(got, ",") != "x,y" {
		t.Errorf("headers = %v, want [x y]", got)
	}
	if len(r.dirs) != 2 {
		t.Errorf("runner called %d times, want 2", len(r.dirs))
	}
}

func TestRun_dryRun(t *testing.T) {
	u, r, buf := newTestUpdater()
	u.DryRun = true
	anchor := layoutFixture(t)

	if err := u.Run(context.Background(), config.Default().Layout(anchor)); err != nil {
		t.Fatal(err)
	}
	if len(r.dirs) != 0 {
		t.Errorf("dry run invoked the runner %d times", len(r.dirs))
	}
	if got := headers(buf.String()); len(got) != 3 {
		t.Errorf("headers = %v, want 3", got)
	}
}

func TestRun_onProject(t *testing.T) {
	u, r, _ := newTestUpdater()
	anchor := layoutFixture(t)
	r.fail[filepath.Join(anchor, "projects", "x")] = 1

	var seen []Target
	var errs []error
	u.OnProject = func(tg Target, err error) {
		seen = append(seen, tg)
		errs = append(errs, err)
	}

	if err := u.Run(context.Background(), config.Default().Layout(anchor)); err == nil {
		t.Fatal("expected error")
	}
	if len(seen) != 2 {
		t.Fatalf("OnProject called %d times, want 2", len(seen))
	}
	if seen[0].ScanRoot != AnchorScanRoot || seen[0].Name != "root" || errs[0] != nil {
		t.Errorf("first = %+v, %v", seen[0], errs[0])
	}
	if seen[1].ScanRoot != "projects" || seen[1].Name != "x" || errs[1] == nil {
		t.Errorf("second = %+v, %v", seen[1], errs[1])
	}
}

func TestPlan(t *testing.T) {
	u, r, buf := newTestUpdater()
	anchor := layoutFixture(t)
	testutil.Manifest(t, anchor, "projects/a/b")

	targets, err := u.Plan(config.Default().Layout(anchor))
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	var got []string
	for _, tg := range targets {
		got = append(got, tg.ScanRoot+":"+tg.Name)
	}
	want := ".:root,projects:a/b,projects:x,bitloop/examples:y"
	if strings.Join(got, ",") != want {
		t.Errorf("Plan() = %v, want %s", got, want)
	}
	if buf.Len() != 0 || len(r.dirs) != 0 {
		t.Error("Plan() should have no side effects")
	}
}

func TestUpdateSingle_realBinary(t *testing.T) {
	fake := testutil.NewFakeVcpkg(t)
	root := testutil.Tree(t)
	testutil.Manifest(t, root, "engine")
	dir := filepath.Join(root, "engine")

	var buf bytes.Buffer
	runner := &vcpkg.Runner{Bin: fake.Bin, Stdout: &buf, Stderr: &buf}
	u := New(runner, ui.NewPrinter(&buf))
	u.Opts = vcpkg.UpdateOpts{AddInitialBaseline: true}

	if err := u.UpdateSingle(context.Background(), dir, ""); err != nil {
		t.Fatalf("UpdateSingle() error: %v", err)
	}
	calls := fake.Calls(t)
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if calls[0].Dir != dir {
		t.Errorf("cwd = %q, want %q", calls[0].Dir, dir)
	}
	if calls[0].Args != "x-update-baseline --add-initial-baseline" {
		t.Errorf("args = %q", calls[0].Args)
	}
}
