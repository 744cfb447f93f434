package serialize

import (
	"fmt"

	cuminjson "github.com/cympfh/cumin/libs/json"
)

// Encode renders node in the requested format.
func Encode(node cuminjson.Node, format OutputFormat) ([]byte, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		return ToJSON(node)
	case FormatYAML:
		return ToYAML(node)
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

// ToJSON renders node as compact JSON text; Node already marshals
// itself in declaration order, so this is a direct passthrough.
func ToJSON(node cuminjson.Node) ([]byte, error) {
	return node.MarshalJSON()
}
