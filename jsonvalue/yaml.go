package jsonvalue

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Core schema tags produced by yaml.v3 tag resolution.
const (
	yamlTagNull  = "!!null"
	yamlTagBool  = "!!bool"
	yamlTagInt   = "!!int"
	yamlTagFloat = "!!float"
	yamlTagMerge = "!!merge"
)

// ParseYAML parses a single YAML document into a Value. Only the
// JSON-compatible subset is accepted: mappings with scalar keys, sequences
// and null, boolean, numeric or string scalars. Aliases are expanded.
// Other scalar tags (timestamps, binary) are kept as their source text.
// Merge keys ("<<") are rejected; a quoted "<<" is an ordinary key.
func ParseYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	// An empty document decodes to a zero node.
	if doc.Kind == 0 {
		return Null(), nil
	}

	return fromYAMLNode(&doc)
}

func fromYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return Value{}, fmt.Errorf("%w: expected a single YAML document", ErrSyntax)
		}

		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return Value{}, fmt.Errorf("%w: unresolved alias at line %d", ErrSyntax, n.Line)
		}

		return fromYAMLNode(n.Alias)
	case yaml.SequenceNode:
		elems := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromYAMLNode(c)
			if err != nil {
				return Value{}, err
			}

			elems = append(elems, v)
		}

		return Value{kind: KindArray, elems: elems}, nil
	case yaml.MappingNode:
		return fromYAMLMapping(n)
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	default:
		return Value{}, fmt.Errorf("%w: YAML node kind %d at line %d", ErrUnsupported, n.Kind, n.Line)
	}
}

func fromYAMLMapping(n *yaml.Node) (Value, error) {
	members := make([]Member, 0, len(n.Content)/2)
	seen := make(map[string]struct{}, len(n.Content)/2)

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]

		if keyNode.Kind != yaml.ScalarNode {
			return Value{}, fmt.Errorf("%w: non-scalar mapping key at line %d", ErrUnsupported, keyNode.Line)
		}

		if keyNode.ShortTag() == yamlTagMerge {
			return Value{}, fmt.Errorf("%w: merge key at line %d", ErrUnsupported, keyNode.Line)
		}

		key := keyNode.Value
		if _, dup := seen[key]; dup {
			return Value{}, fmt.Errorf("%w: %q at line %d", ErrDuplicateKey, key, keyNode.Line)
		}
		seen[key] = struct{}{}

		v, err := fromYAMLNode(valNode)
		if err != nil {
			return Value{}, err
		}

		members = append(members, Member{Key: key, Value: v})
	}

	return Value{kind: KindObject, members: members}, nil
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case yamlTagNull:
		return Null(), nil
	case yamlTagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrSyntax, err)
		}

		return Bool(b), nil
	case yamlTagInt, yamlTagFloat:
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("%w: %s at line %d", ErrInvalidNumber, n.Value, n.Line)
		}

		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, fmt.Errorf("%w: %s at line %d", ErrInvalidNumber, n.Value, n.Line)
		}

		return Number(f), nil
	default:
		return String(n.Value), nil
	}
}
