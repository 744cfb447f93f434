// Package serialize turns an evaluated Cumin program's JSON node tree
// into the CLI's two output formats, per spec §6's "Output" interface.
package serialize

import "fmt"

// OutputFormat is one of the CLI's supported output encodings.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Validate checks f is one of the supported formats.
func (f OutputFormat) Validate() error {
	switch f {
	case FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported format: %q (supported: json, yaml)", f)
	}
}
