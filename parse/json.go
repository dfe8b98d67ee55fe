package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/typeforge-dev/typeforge/schema"
)

// parseJSON decodes via the token stream rather than into map[string]any,
// which would lose object key order.
func parseJSON(data []byte) (schema.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return schema.Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return schema.Value{}, errors.New("trailing content after document")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (schema.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return schema.Value{}, errors.New("empty document")
		}
		return schema.Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var fields []schema.ObjectField
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return schema.Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return schema.Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return schema.Value{}, err
				}
				fields = append(fields, schema.F(key, val))
			}
			if _, err := dec.Token(); err != nil {
				return schema.Value{}, err
			}
			return schema.Object(fields...), nil
		case '[':
			var items []schema.Value
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return schema.Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return schema.Value{}, err
			}
			return schema.List(items...), nil
		}
		return schema.Value{}, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return schema.String(t), nil
	case bool:
		return schema.Bool(t), nil
	case json.Number:
		return numberValue(string(t))
	case nil:
		return schema.Null(), nil
	default:
		return schema.Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

// numberValue classifies a numeric literal: no fractional or exponent part
// and in int64 range means integer, everything else is a float.
func numberValue(lit string) (schema.Value, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return schema.Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return schema.Value{}, fmt.Errorf("invalid number literal %q", lit)
	}
	return schema.Float(f), nil
}
