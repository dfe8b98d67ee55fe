package strings

import "testing"

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"UserName", "user_name"},
		{"userName", "user_name"},
		{"HTTPRequest", "http_request"},
		{"userID", "user_id"},
		{"already_snake", "already_snake"},
		{"kebab-case", "kebab_case"},
		{"with space", "with_space"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ToSnakeCase(tt.input); got != tt.want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user_name", "UserName"},
		{"kebab-case", "KebabCase"},
		{"with space", "WithSpace"},
		{"dotted.name", "DottedName"},
		{"alreadyPascal", "AlreadyPascal"},
		{"single", "Single"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ToPascalCase(tt.input); got != tt.want {
			t.Errorf("ToPascalCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSingularize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"users", "user"},
		{"entries", "entry"},
		{"categories", "category"},
		{"address", "address"},
		{"children", "children"},
		{"s", "s"},
		{"item", "item"},
	}

	for _, tt := range tests {
		if got := Singularize(tt.input); got != tt.want {
			t.Errorf("Singularize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"name", true},
		{"_private", true},
		{"name2", true},
		{"2name", false},
		{"has-dash", false},
		{"has space", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsIdentifier(tt.input); got != tt.want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSafeIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"has-dash", "has_dash"},
		{"dotted.name", "dotted_name"},
		{"2fast", "_2fast"},
		{"", "_"},
		{"@#$", "___"},
	}

	for _, tt := range tests {
		if got := SafeIdentifier(tt.input); got != tt.want {
			t.Errorf("SafeIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
