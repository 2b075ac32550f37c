// Package updater runs vcpkg baseline updates across a repository layout.
// Work is strictly sequential: each vcpkg invocation finishes before the
// next directory is considered, and the first failure ends the run.
package updater
