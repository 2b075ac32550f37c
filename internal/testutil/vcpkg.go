package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// FailMarker is the file FakeVcpkg checks in its working directory. If
// present, the fake exits with the code stored in it.
const FailMarker = ".vcpkg-fail"

// FakeVcpkg is a shell script standing in for the vcpkg binary. Every
// invocation appends "<cwd>\t<args>" to a log file.
type FakeVcpkg struct {
	Bin string
	log string
}

// Call is one recorded invocation of FakeVcpkg.
type Call struct {
	Dir  string
	Args string
}

// NewFakeVcpkg writes the fake binary into a temp directory.
func NewFakeVcpkg(t *testing.T) *FakeVcpkg {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake vcpkg requires /bin/sh")
	}
	dir := t.TempDir()
	f := &FakeVcpkg{
		Bin: filepath.Join(dir, "vcpkg"),
		log: filepath.Join(dir, "calls.log"),
	}
	script := `#!/bin/sh
if [ "$1" = "version" ]; then
  echo "vcpkg package management program version 2025-09-03-fake"
  exit 0
fi
printf '%s\t%s\n' "$(pwd -P)" "$*" >> '` + f.log + `'
if [ -f ` + FailMarker + ` ]; then
  exit "$(cat ` + FailMarker + `)"
fi
exit 0
`
	if err := os.WriteFile(f.Bin, []byte(script), 0755); err != nil { //nolint:gosec // test script must be executable
		t.Fatal(err)
	}
	return f
}

// Calls returns the recorded invocations in order.
func (f *FakeVcpkg) Calls(t *testing.T) []Call {
	t.Helper()
	data, err := os.ReadFile(f.log)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	var calls []Call
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		dir, args, _ := strings.Cut(line, "\t")
		calls = append(calls, Call{Dir: dir, Args: args})
	}
	return calls
}

// Fail makes the fake exit with code when run inside dir.
func Fail(t *testing.T, dir string, code int) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FailMarker), []byte(strconv.Itoa(code)), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}
