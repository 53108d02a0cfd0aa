package cli

import (
	"errors"
	"fmt"

	"github.com/vburojevic/pirtimer/internal/output"
)

// outputErrorCommon reports a command failure before any session runs. The
// code is one of INVALID_FLAGS, INVALID_CONFIG, NOT_A_TERMINAL,
// HARDWARE_UNAVAILABLE or DISPLAY_UNAVAILABLE, matching the error schema. In
// ndjson mode it goes to stdout next to the events; in text mode to stderr.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	if globals != nil && globals.Format == "ndjson" {
		output.NewNDJSONWriter(globals.Stdout).WriteError(code, message, hint...)
	} else if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %s", code, message)
		if len(hint) > 0 && hint[0] != "" {
			fmt.Fprintf(globals.Stderr, " (hint: %s)", hint[0])
		}
		fmt.Fprintln(globals.Stderr)
	}
	return errors.New(message)
}
