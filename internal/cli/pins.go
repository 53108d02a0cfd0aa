package cli

import (
	"encoding/json"

	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/pirtimer/internal/hal/rpi"
	"github.com/vburojevic/pirtimer/internal/output"
)

// PinsCmd prints the configured pin map
type PinsCmd struct{}

// PinOutput is one row of the pin map in NDJSON
type PinOutput struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Part          string `json:"part"`
	Connection    string `json:"connection"`
	Detail        string `json:"detail"`
}

// Run executes the pins command
func (c *PinsCmd) Run(globals *Globals) error {
	rows := rpi.PinMap(rpiConfig(globals.Config, globals.Config.Display.Kind == displayGrove))

	if globals.Format == "ndjson" {
		encoder := json.NewEncoder(globals.Stdout)
		for _, row := range rows {
			if err := encoder.Encode(PinOutput{
				Type:          "pin",
				SchemaVersion: output.SchemaVersion,
				Part:          row[0],
				Connection:    row[1],
				Detail:        row[2],
			}); err != nil {
				return err
			}
		}
		return nil
	}

	table := tablewriter.NewWriter(globals.Stdout)
	table.Header("Part", "Connection", "Detail")
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
