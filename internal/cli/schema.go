package cli

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaCmd outputs JSON Schema for pirtimer NDJSON output types
type SchemaCmd struct {
	Type []string `short:"t" help:"Output types to include (session_start,phase_start,pause,resume,session_end,error,info). Default: all"`
}

var schemaTypes = []string{"session_start", "phase_start", "pause", "resume", "session_end", "error", "info"}

// Run executes the schema command
func (c *SchemaCmd) Run(globals *Globals) error {
	if globals.Format == "text" && len(c.Type) == 0 {
		c.outputTextHelp(globals)
		return nil
	}

	schemas := map[string]interface{}{
		"session_start": sessionStartSchema(),
		"phase_start":   phaseStartSchema(),
		"pause":         pauseSchema(),
		"resume":        resumeSchema(),
		"session_end":   sessionEndSchema(),
		"error":         errorSchema(),
		"info":          infoSchema(),
	}

	typesToOutput := c.Type
	if len(typesToOutput) == 0 {
		typesToOutput = schemaTypes
	}

	out := map[string]interface{}{
		"$schema":     "http://json-schema.org/draft-07/schema#",
		"title":       "pirtimer Output Schemas",
		"description": "JSON Schema definitions for all pirtimer NDJSON output types",
		"definitions": map[string]interface{}{},
	}

	defs := out["definitions"].(map[string]interface{})
	for _, t := range typesToOutput {
		t = strings.ToLower(strings.TrimSpace(t))
		if schema, ok := schemas[t]; ok {
			defs[t] = schema
		}
	}

	encoder := json.NewEncoder(globals.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func constType(name string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "const": name}
}

// eventSchema adds the fields every session event carries
func eventSchema(name, title, description string, props map[string]interface{}, required ...string) map[string]interface{} {
	props["type"] = constType(name)
	props["schemaVersion"] = prop("integer", "Schema version of the event")
	props["session_id"] = prop("string", "UUID of the session")
	props["timestamp"] = map[string]interface{}{
		"type":        "string",
		"format":      "date-time",
		"description": "ISO8601 timestamp of the event",
	}
	return map[string]interface{}{
		"type":        "object",
		"title":       title,
		"description": description,
		"properties":  props,
		"required":    append([]string{"type", "schemaVersion", "session_id", "timestamp"}, required...),
	}
}

func sessionStartSchema() map[string]interface{} {
	return eventSchema("session_start", "Session Start", "A session began", map[string]interface{}{
		"config": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"mode": map[string]interface{}{
					"type":        "integer",
					"enum":        []int{1, 2},
					"description": "1 = motion required, 2 = stillness required",
				},
				"exercise_seconds": prop("integer", "Exercise phase length"),
				"rest_seconds":     prop("integer", "Rest phase length"),
				"sets":             prop("integer", "Number of sets"),
			},
			"required": []string{"mode", "exercise_seconds", "rest_seconds", "sets"},
		},
	}, "config")
}

func phaseStartSchema() map[string]interface{} {
	return eventSchema("phase_start", "Phase Start", "An exercise or rest phase began", map[string]interface{}{
		"set":  prop("integer", "1-based set number"),
		"sets": prop("integer", "Total sets"),
		"phase": map[string]interface{}{
			"type": "string",
			"enum": []string{"exercise", "rest"},
		},
		"seconds": prop("integer", "Phase length in seconds"),
	}, "set", "sets", "phase", "seconds")
}

func pauseSchema() map[string]interface{} {
	return eventSchema("pause", "Pause", "The exercise phase paused because the required motion state was violated", map[string]interface{}{
		"set":             prop("integer", "1-based set number"),
		"elapsed_seconds": prop("integer", "Exercise seconds counted before the pause"),
		"reason": map[string]interface{}{
			"type": "string",
			"enum": []string{"no_motion", "motion_detected"},
		},
		"message":        prop("string", "Text shown on the display"),
		"required_state": prop("boolean", "Motion state that resumes the phase"),
	}, "set", "elapsed_seconds", "reason", "required_state")
}

func resumeSchema() map[string]interface{} {
	return eventSchema("resume", "Resume", "A paused exercise phase continued", map[string]interface{}{
		"set":            prop("integer", "1-based set number"),
		"paused_seconds": prop("number", "How long the pause lasted"),
	}, "set", "paused_seconds")
}

func sessionEndSchema() map[string]interface{} {
	return eventSchema("session_end", "Session End", "A session finished or was stopped", map[string]interface{}{
		"outcome": map[string]interface{}{
			"type": "string",
			"enum": []string{"finished", "aborted"},
		},
		"summary": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"sets_completed":   prop("integer", "Sets whose exercise phase completed"),
				"exercise_seconds": prop("integer", "Exercise seconds counted"),
				"rest_seconds":     prop("integer", "Rest seconds counted"),
				"pauses":           prop("integer", "Number of pauses"),
				"paused_seconds":   prop("number", "Total time spent paused"),
				"transitions":      prop("integer", "Changes of the debounced motion state"),
				"duration_seconds": prop("number", "Wall time from start to end"),
			},
		},
	}, "outcome", "summary")
}

func errorSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Error",
		"description": "Error message from pirtimer",
		"properties": map[string]interface{}{
			"type":          constType("error"),
			"schemaVersion": prop("integer", "Schema version"),
			"code": map[string]interface{}{
				"type":        "string",
				"description": "Error code",
				"enum": []string{
					"INVALID_FLAGS",
					"INVALID_CONFIG",
					"NOT_A_TERMINAL",
					"HARDWARE_UNAVAILABLE",
					"DISPLAY_UNAVAILABLE",
				},
			},
			"message": prop("string", "Human-readable error description"),
			"hint":    prop("string", "Suggested fix"),
		},
		"required": []string{"type", "code", "message"},
	}
}

func infoSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Info",
		"description": "Status line, e.g. where the LCD is mirrored",
		"properties": map[string]interface{}{
			"type":          constType("info"),
			"schemaVersion": prop("integer", "Schema version"),
			"message":       prop("string", "Status text"),
			"display":       prop("string", "Display kind"),
			"device":        prop("string", "Device or session name"),
		},
		"required": []string{"type", "message"},
	}
}

// outputTextHelp prints a quick reference
func (c *SchemaCmd) outputTextHelp(globals *Globals) {
	fmt.Fprintln(globals.Stdout, "pirtimer Output Types:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "  session_start - Session began, with its config")
	fmt.Fprintln(globals.Stdout, "  phase_start   - Exercise or rest phase began")
	fmt.Fprintln(globals.Stdout, "  pause         - Exercise paused on a motion violation")
	fmt.Fprintln(globals.Stdout, "  resume        - Paused exercise continued")
	fmt.Fprintln(globals.Stdout, "  session_end   - Session finished or stopped, with summary")
	fmt.Fprintln(globals.Stdout, "  error         - Error from pirtimer")
	fmt.Fprintln(globals.Stdout, "  info          - Status line")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Use --format ndjson for the JSON Schema, --type to filter: pirtimer schema --type pause,resume")
}
