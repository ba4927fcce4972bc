package schemafile

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// parseNode decodes YAML (and therefore JSON) into its root node.
func parseNode(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.Join(ErrFailedToParse, errors.New("document is empty"))
	}
	return resolve(doc.Content[0]), nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func decode(n *yaml.Node, v any) error {
	return n.Decode(v)
}

func optional[T any](n *yaml.Node) (*T, error) {
	var v T
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// mappingKey returns the value node stored under key, or nil.
func mappingKey(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolve(n.Content[i+1])
		}
	}
	return nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return fmt.Sprintf("scalar %q", n.Value)
	default:
		return "node"
	}
}
