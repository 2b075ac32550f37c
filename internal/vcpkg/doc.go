// Package vcpkg provides a wrapper around the vcpkg CLI commands used by
// baseliner. It locates the binary, runs x-update-baseline in a project
// directory, and reports non-zero exits as *ExitError.
package vcpkg
