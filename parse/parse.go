// Package parse turns JSON, YAML, and TOML documents into the generic value
// tree the inference engine consumes. All three decoders preserve source key
// order, because field order in the samples drives field order in the
// generated types.
package parse

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/typeforge-dev/typeforge/schema"
)

// Parse decodes one sample document in the given format. The source name is
// only used for error reporting and may be empty.
func Parse(data []byte, format Format, source string) (schema.Value, error) {
	var (
		v   schema.Value
		err error
	)
	switch format {
	case FormatJSON:
		v, err = parseJSON(data)
	case FormatYAML:
		v, err = parseYAML(data)
	case FormatTOML:
		v, err = parseTOML(data)
	default:
		return schema.Value{}, fmt.Errorf("parse: unknown format %q", format)
	}
	if err != nil {
		return schema.Value{}, &MalformedInputError{Format: format, Source: source, Err: err}
	}
	return v, nil
}

// Format identifies a supported input format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats returns the supported format identifiers.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat resolves a user-supplied format string, accepting common
// aliases (yml for yaml).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("parse: unknown format %q (supported: json, yaml, toml)", s)
	}
}

// DetectFormat guesses the input format from a file name's extension.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// MalformedInputError reports a sample that failed to decode. It aborts the
// whole run: a bad sample means the inferred types would be wrong, not
// merely incomplete.
type MalformedInputError struct {
	Format Format
	Source string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse: malformed %s input %s: %v", e.Format, e.Source, e.Err)
	}
	return fmt.Sprintf("parse: malformed %s input: %v", e.Format, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
