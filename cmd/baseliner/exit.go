package main

import (
	"errors"

	"github.com/fbkclanna/baseliner/internal/vcpkg"
)

// exitCode maps an error to the process exit code: the vcpkg exit status
// when vcpkg failed, 1 otherwise.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *vcpkg.ExitError
	if errors.As(err, &ee) && ee.Code > 0 {
		return ee.Code
	}
	return 1
}
