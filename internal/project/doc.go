// Package project models vcpkg project directories: a directory counts as a
// project when it contains a vcpkg.json manifest. It resolves directories to
// canonical absolute paths and discovers projects below a scan root without
// depending on other internal packages.
package project
