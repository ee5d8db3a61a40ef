package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	// FormatYAML outputs as YAML (default for terminals).
	FormatYAML OutputFormat = "yaml"
	// FormatJSON outputs as JSON.
	FormatJSON OutputFormat = "json"
	// FormatRaw outputs the value's string form.
	FormatRaw OutputFormat = "raw"
)

// OutputOptions configures output behavior.
type OutputOptions struct {
	// Format is the output format (yaml, json, raw).
	Format OutputFormat

	// File is the output file path (empty for stdout).
	File string

	// Writer is an optional custom writer (overrides File).
	Writer io.Writer
}

// Output writes the result to the configured destination.
func Output(result any, opts OutputOptions) error {
	var w io.Writer = os.Stdout

	if opts.Writer != nil {
		w = opts.Writer
	} else if opts.File != "" {
		f, err := os.Create(opts.File)
		if err != nil {
			return fmt.Errorf("cli: create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatYAML, "":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("cli: marshal yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatRaw:
		_, err := fmt.Fprintln(w, result)
		return err
	default:
		return fmt.Errorf("cli: unsupported output format: %s", opts.Format)
	}
}
