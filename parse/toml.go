package parse

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/typeforge-dev/typeforge/schema"
)

// parseTOML decodes into a generic map and then reorders every table's keys
// using the decoder's metadata, which records keys in source order. Array
// indices are not part of metadata key paths, so elements of an array of
// tables share one ordering, which is what inference wants anyway.
func parseTOML(data []byte) (schema.Value, error) {
	var raw map[string]interface{}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return schema.Value{}, err
	}
	order := tomlKeyOrder(md.Keys())
	return tomlValue(raw, nil, order), nil
}

// tomlKeyOrder maps a table path to its child keys in order of first
// appearance.
func tomlKeyOrder(keys []toml.Key) map[string][]string {
	order := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, k := range keys {
		if len(k) == 0 {
			continue
		}
		parent := strings.Join(k[:len(k)-1], "\x00")
		child := k[len(k)-1]
		if seen[parent] == nil {
			seen[parent] = make(map[string]bool)
		}
		if !seen[parent][child] {
			seen[parent][child] = true
			order[parent] = append(order[parent], child)
		}
	}
	return order
}

func tomlValue(v interface{}, path []string, order map[string][]string) schema.Value {
	switch t := v.(type) {
	case map[string]interface{}:
		var fields []schema.ObjectField
		used := make(map[string]bool)
		for _, name := range order[strings.Join(path, "\x00")] {
			val, ok := t[name]
			if !ok {
				continue
			}
			child := append(append([]string(nil), path...), name)
			fields = append(fields, schema.F(name, tomlValue(val, child, order)))
			used[name] = true
		}
		// Keys absent from metadata should not happen; keep them anyway,
		// sorted so output stays deterministic.
		var rest []string
		for name := range t {
			if !used[name] {
				rest = append(rest, name)
			}
		}
		sort.Strings(rest)
		for _, name := range rest {
			child := append(append([]string(nil), path...), name)
			fields = append(fields, schema.F(name, tomlValue(t[name], child, order)))
		}
		return schema.Object(fields...)
	case []map[string]interface{}:
		items := make([]schema.Value, 0, len(t))
		for _, el := range t {
			items = append(items, tomlValue(el, path, order))
		}
		return schema.List(items...)
	case []interface{}:
		items := make([]schema.Value, 0, len(t))
		for _, el := range t {
			items = append(items, tomlValue(el, path, order))
		}
		return schema.List(items...)
	case bool:
		return schema.Bool(t)
	case int64:
		return schema.Int(t)
	case float64:
		return schema.Float(t)
	case string:
		return schema.String(t)
	case time.Time:
		return schema.String(t.Format(time.RFC3339))
	default:
		return schema.String(fmt.Sprint(t))
	}
}
