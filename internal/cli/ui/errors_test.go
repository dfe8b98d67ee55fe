package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatError(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "UNKNOWN TARGET",
				Problem: "No generator for target 'kotlin'.",
			},
			contains: []string{
				"❌",
				"UNKNOWN TARGET",
				"No generator for target 'kotlin'.",
			},
		},
		{
			name: "error with suggestions",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Context:     "UNKNOWN TARGET",
				Problem:     "No generator for target 'typescrip'.",
				Suggestions: []string{"typescript", "zod"},
			},
			contains: []string{
				"Did you mean: typescript, zod?",
			},
		},
		{
			name: "error with help commands",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "PARSE FAILED",
				Problem: "Cannot parse sample 'user.json'.",
				HelpCommands: []string{
					"Force a format: typeforge generate --format json",
					"Get help: typeforge generate --help",
				},
			},
			contains: []string{
				"→ Force a format: typeforge generate --format json",
				"→ Get help: typeforge generate --help",
			},
		},
		{
			name: "warning message",
			opts: ErrorOptions{
				Level:   ErrorLevelWarning,
				Problem: "Empty array produced an any-typed element",
			},
			contains: []string{
				"⚠️",
				"Empty array produced an any-typed element",
			},
		},
		{
			name: "info message",
			opts: ErrorOptions{
				Level:   ErrorLevelInfo,
				Problem: "Generation completed successfully",
			},
			contains: []string{
				"ℹ️",
				"Generation completed successfully",
			},
		},
		{
			name: "error with consequence",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Context:     "PARSE FAILED",
				Problem:     "Cannot parse sample 'day2.json'.",
				Consequence: "unexpected end of JSON input",
			},
			contains: []string{
				"Cannot parse sample 'day2.json'.",
				"unexpected end of JSON input",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatError(tt.opts)

			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("FormatError() output missing expected string:\nExpected to contain: %q\nGot: %q", expected, result)
				}
			}
		})
	}
}

func TestUnknownTargetError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := UnknownTargetError("typescrip", []string{"go", "python", "rust", "typescript", "zod"}, true)

	for _, expected := range []string{
		"UNKNOWN TARGET",
		"No generator for target 'typescrip'.",
		"Did you mean: typescript",
		"typeforge targets",
	} {
		if !strings.Contains(result, expected) {
			t.Errorf("UnknownTargetError() missing %q in:\n%s", expected, result)
		}
	}
}

func TestUnknownTargetErrorNoSuggestions(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := UnknownTargetError("cobol77", []string{"go", "rust"}, true)

	if strings.Contains(result, "Did you mean") {
		t.Errorf("UnknownTargetError() should not suggest anything for a distant name, got:\n%s", result)
	}
}

func TestParseFailedError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := ParseFailedError("broken.yaml", bytes.ErrTooLarge, true)

	for _, expected := range []string{
		"PARSE FAILED",
		"Cannot parse sample 'broken.yaml'.",
		bytes.ErrTooLarge.Error(),
	} {
		if !strings.Contains(result, expected) {
			t.Errorf("ParseFailedError() missing %q in:\n%s", expected, result)
		}
	}
}

func TestConfigError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := ConfigError("infer.map_threshold must not be negative, got: -1", nil, true)

	for _, expected := range []string{
		"CONFIGURATION ERROR",
		"infer.map_threshold",
		".typeforge.yml",
	} {
		if !strings.Contains(result, expected) {
			t.Errorf("ConfigError() missing %q in:\n%s", expected, result)
		}
	}
}

func TestFormatSuccess(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := FormatSuccess("Wrote types.ts (TypeScript)", true)
	if !strings.Contains(result, "✓") || !strings.Contains(result, "Wrote types.ts") {
		t.Errorf("FormatSuccess() = %q", result)
	}
}

func TestWriteSuccess(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	WriteSuccess(&buf, "done", true)

	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("WriteSuccess() should end with a newline")
	}
}

func TestWarning(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := Warning("samples had no common fields", []string{"check that all samples describe the same entity"}, true)
	if !strings.Contains(result, "⚠️") {
		t.Errorf("Warning() missing symbol: %q", result)
	}
	if !strings.Contains(result, "Did you mean: check that all samples describe the same entity?") {
		t.Errorf("Warning() missing suggestions: %q", result)
	}
}
