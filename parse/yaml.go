package parse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/typeforge-dev/typeforge/schema"
)

// parseYAML decodes through the node tree, which keeps mapping key order.
// Unmarshal into map[string]any would not.
func parseYAML(data []byte) (schema.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return schema.Value{}, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return schema.Value{}, errors.New("empty document")
	}
	return yamlNode(doc.Content[0])
}

func yamlNode(n *yaml.Node) (schema.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return schema.Null(), nil
		}
		return yamlNode(n.Content[0])
	case yaml.AliasNode:
		return yamlNode(n.Alias)
	case yaml.MappingNode:
		var fields []schema.ObjectField
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := yamlNode(n.Content[i+1])
			if err != nil {
				return schema.Value{}, err
			}
			fields = append(fields, schema.F(n.Content[i].Value, val))
		}
		return schema.Object(fields...), nil
	case yaml.SequenceNode:
		items := make([]schema.Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := yamlNode(c)
			if err != nil {
				return schema.Value{}, err
			}
			items = append(items, item)
		}
		return schema.List(items...), nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return schema.Value{}, fmt.Errorf("unexpected yaml node kind %d at line %d", n.Kind, n.Line)
	}
}

func yamlScalar(n *yaml.Node) (schema.Value, error) {
	switch n.Tag {
	case "!!null":
		return schema.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return schema.Value{}, fmt.Errorf("invalid bool %q at line %d", n.Value, n.Line)
		}
		return schema.Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			// Out-of-range integers widen to float, same as repeated-sample
			// unification would.
			f, ferr := strconv.ParseFloat(n.Value, 64)
			if ferr != nil {
				return schema.Value{}, fmt.Errorf("invalid integer %q at line %d", n.Value, n.Line)
			}
			return schema.Float(f), nil
		}
		return schema.Int(i), nil
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf":
			return schema.Float(math.Inf(1)), nil
		case "-.inf":
			return schema.Float(math.Inf(-1)), nil
		case ".nan":
			return schema.Float(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return schema.Value{}, fmt.Errorf("invalid float %q at line %d", n.Value, n.Line)
		}
		return schema.Float(f), nil
	default:
		return schema.String(n.Value), nil
	}
}
