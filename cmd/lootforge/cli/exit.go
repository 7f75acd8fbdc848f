// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError ends the process with Code and no further message. Return
// it from Run after the command has reported its own failures, as
// "serial decode" does when some serials in a batch do not decode.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns Code. main checks for this method to exit without
// printing the error.
func (e *ExitError) ExitCode() int {
	return e.Code
}
