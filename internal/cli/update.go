package cli

import (
	"encoding/json"
	"fmt"

	"github.com/vburojevic/pirtimer/internal/output"
)

// VersionCmd shows the version
type VersionCmd struct{}

// VersionOutput represents the NDJSON output for version
type VersionOutput struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Version       string `json:"version"`
	Commit        string `json:"commit"`
}

func (c *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(VersionOutput{
			Type:          "version",
			SchemaVersion: output.SchemaVersion,
			Version:       Version,
			Commit:        Commit,
		})
	}
	fmt.Fprintf(globals.Stdout, "pirtimer version %s (%s)\n", Version, Commit)
	return nil
}

// UpdateCmd shows how to upgrade pirtimer
type UpdateCmd struct{}

// UpdateOutput represents the NDJSON output for update instructions
type UpdateOutput struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Version       string `json:"current_version"`
	Commit        string `json:"commit"`
	GoInstall     string `json:"go_install"`
	CrossBuild    string `json:"cross_build"`
	ReleasesURL   string `json:"releases_url"`
}

const (
	goInstallCmd  = "go install github.com/vburojevic/pirtimer/cmd/pirtimer@latest"
	crossBuildCmd = "GOOS=linux GOARCH=arm64 go build -o pirtimer ./cmd/pirtimer"
	releasesURL   = "https://github.com/vburojevic/pirtimer/releases"
)

// Run executes the update command
func (c *UpdateCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		return c.outputNDJSON(globals)
	}
	return c.outputText(globals)
}

func (c *UpdateCmd) outputNDJSON(globals *Globals) error {
	out := UpdateOutput{
		Type:          "update",
		SchemaVersion: output.SchemaVersion,
		Version:       Version,
		Commit:        Commit,
		GoInstall:     goInstallCmd,
		CrossBuild:    crossBuildCmd,
		ReleasesURL:   releasesURL,
	}

	encoder := json.NewEncoder(globals.Stdout)
	return encoder.Encode(out)
}

func (c *UpdateCmd) outputText(globals *Globals) error {
	fmt.Fprintln(globals.Stdout, "pirtimer update instructions")
	fmt.Fprintln(globals.Stdout)
	fmt.Fprintf(globals.Stdout, "Current version: %s (%s)\n", Version, Commit)
	fmt.Fprintln(globals.Stdout)
	fmt.Fprintln(globals.Stdout, "To upgrade on the Pi via Go:")
	fmt.Fprintf(globals.Stdout, "  %s\n", goInstallCmd)
	fmt.Fprintln(globals.Stdout)
	fmt.Fprintln(globals.Stdout, "To cross-compile on another machine:")
	fmt.Fprintf(globals.Stdout, "  %s\n", crossBuildCmd)
	fmt.Fprintln(globals.Stdout)
	fmt.Fprintln(globals.Stdout, "For release notes, see:")
	fmt.Fprintf(globals.Stdout, "  %s\n", releasesURL)

	return nil
}
