package strings

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts CamelCase to snake_case
// Handles acronyms properly (HTTPRequest -> http_request)
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		switch {
		case r == '-' || r == ' ':
			result.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				// Add underscore before uppercase letter if:
				// 1. Previous char is lowercase
				// 2. Next char is lowercase (for acronyms like HTTPRequest -> http_request)
				if unicode.IsLower(prev) {
					result.WriteRune('_')
				} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) && prev != '_' && prev != '-' && prev != ' ' {
					result.WriteRune('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ToPascalCase converts snake_case, kebab-case, or space-separated words
// to PascalCase (user_name -> UserName).
func ToPascalCase(s string) string {
	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			capitalizeNext = true
		case capitalizeNext:
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

// Singularize strips a simple plural suffix from a name so that array and
// map element types read naturally (users -> user, entries -> entry).
// Names that do not look plural are returned unchanged.
func Singularize(s string) string {
	switch {
	case len(s) > 3 && strings.HasSuffix(s, "ies"):
		return s[:len(s)-3] + "y"
	case len(s) > 1 && strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss"):
		return s[:len(s)-1]
	default:
		return s
	}
}

// IsIdentifier reports whether s is a plain letter/digit/underscore
// identifier that does not start with a digit.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if unicode.IsDigit(r) && i > 0 {
			continue
		}
		return false
	}
	return true
}

// SafeIdentifier rewrites a field name into something usable as an
// identifier in most targets: dashes, dots, and spaces become underscores
// and a leading digit gets an underscore prefix. Keyword escaping is left
// to the individual renderers since keyword sets differ per language.
func SafeIdentifier(s string) string {
	var result strings.Builder
	for _, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(r)
		default:
			result.WriteRune('_')
		}
	}
	out := result.String()
	if out == "" {
		return "_"
	}
	if unicode.IsDigit(rune(out[0])) {
		return "_" + out
	}
	return out
}
