package cli

// validateFlags centralizes flag combinations every command shares
func validateFlags(globals *Globals, tui bool, terminal bool) error {
	if tui && !terminal {
		return outputErrorCommon(globals, "NOT_A_TERMINAL", "sim needs an interactive terminal", "run 'pirtimer session' for headless use")
	}
	// quiet + text leaves nothing to print; steer to ndjson
	if globals != nil && globals.Format == "text" && globals.Quiet {
		return outputErrorCommon(globals, "INVALID_FLAGS", "--quiet is only supported with ndjson output", "switch to --format ndjson or drop --quiet")
	}
	return nil
}
