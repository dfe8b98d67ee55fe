package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRender(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Target", "Language", "Extension"}, &TableOptions{NoColor: true})
	table.AddRow("typescript", "TypeScript", ".ts")
	table.AddRow("rust", "Rust", ".rs")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "Target      Language    Extension", lines[0])
	assert.Equal(t, "typescript  TypeScript  .ts", strings.TrimRight(lines[2], " "))
	assert.Equal(t, "rust        Rust        .rs", strings.TrimRight(lines[3], " "))
	// The rule under the header spans every column.
	assert.Contains(t, lines[1], "─")
}

func TestTableColumnsWidenToLongestCell(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"A", "B"}, &TableOptions{NoColor: true})
	table.AddRow("longer-than-header", "x")
	table.Render()

	lines := strings.Split(buf.String(), "\n")
	// Header cell A is padded out to the widest row cell plus the separator.
	assert.Equal(t, "A"+strings.Repeat(" ", 17+2)+"B", lines[0])
}

func TestTableNoHeadersRendersNothing(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, nil, &TableOptions{NoColor: true})
	table.AddRow("orphan")
	table.Render()

	assert.Empty(t, buf.String())
}

func TestKeyValueTableAlignsValues(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("Samples", "3")
	kv.AddRow("Types generated", "2")
	kv.Render()

	// Keys pad to the widest label, so both values start in one column.
	want := "Samples:         3\n" +
		"Types generated: 2\n"
	assert.Equal(t, want, buf.String())
}

func TestKeyValueTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewKeyValueTable(&buf, true).Render()
	assert.Empty(t, buf.String())
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Conversion Report", true)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Conversion Report", lines[0])
	assert.Equal(t, strings.Repeat("─", len("Conversion Report")), lines[1])
}

func TestDividerDefaultWidth(t *testing.T) {
	var buf bytes.Buffer
	Divider(&buf, 0, true)
	assert.Equal(t, strings.Repeat("─", 80)+"\n", buf.String())
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"go", 5, "go   "},
		{"rust", 4, "rust"},
		{"typescript", 4, "typescript"},
		{"", 3, "   "},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, padRight(tt.in, tt.width))
	}
}
