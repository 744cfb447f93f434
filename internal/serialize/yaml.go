package serialize

import (
	"bytes"
	"fmt"

	cuminjson "github.com/cympfh/cumin/libs/json"
	"gopkg.in/yaml.v3"
)

// ToYAML walks node into a yaml.Node tree and encodes it. Unlike the
// teacher's generic snapshot serializer, object members are NOT
// sorted: a Dict's field order is already the spec-mandated canonical
// order (struct declaration order), so re-sorting here would only
// scramble it.
func ToYAML(node cuminjson.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(toYAMLNode(node)); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize YAML encoding: %w", err)
	}
	return buf.Bytes(), nil
}

func toYAMLNode(n cuminjson.Node) *yaml.Node {
	switch n.Kind {
	case cuminjson.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
	case cuminjson.KindBool:
		return scalarNode(n.Bool)
	case cuminjson.KindNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: n.Number}
	case cuminjson.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: n.Str}
	case cuminjson.KindArray:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range n.Elems {
			seq.Content = append(seq.Content, toYAMLNode(e))
		}
		return seq
	case cuminjson.KindObject:
		obj := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range n.Fields {
			obj.Content = append(obj.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: f.Name},
				toYAMLNode(f.Value),
			)
		}
		return obj
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
	}
}

func scalarNode(v any) *yaml.Node {
	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%v", v)}
	}
	return node
}
