package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/typeforge-dev/typeforge/schema"
)

// ConversionStats summarizes one generation run for the terminal report.
type ConversionStats struct {
	Duration       time.Duration
	TypesCount     int
	FieldsCount    int
	OptionalFields int
	ArrayFields    int
	MaxDepth       int
	SampleCount    int
	InputSize      int
	OutputSize     int
}

// StatsFromGraph collects structural statistics from a finalized graph.
func StatsFromGraph(g *schema.Graph) ConversionStats {
	var stats ConversionStats
	records := g.Records()
	stats.TypesCount = len(records)

	for _, rec := range records {
		stats.FieldsCount += len(rec.Fields)
		for _, f := range rec.Fields {
			if _, ok := f.Type.(*schema.Optional); ok {
				stats.OptionalFields++
			}
			if isArrayField(f.Type) {
				stats.ArrayFields++
			}
			if d := typeDepth(f.Type); d > stats.MaxDepth {
				stats.MaxDepth = d
			}
		}
	}
	return stats
}

func isArrayField(t schema.Type) bool {
	if opt, ok := t.(*schema.Optional); ok {
		t = opt.Inner
	}
	_, ok := t.(*schema.Array)
	return ok
}

// typeDepth measures container nesting. References count as leaves; their
// depth belongs to their own declaration.
func typeDepth(t schema.Type) int {
	switch v := t.(type) {
	case *schema.Array:
		return 1 + typeDepth(v.Elem)
	case *schema.Optional:
		return typeDepth(v.Inner)
	case *schema.Map:
		return 1 + typeDepth(v.Value)
	case *schema.Union:
		max := 0
		for _, vt := range v.Variants {
			if d := typeDepth(vt); d > max {
				max = d
			}
		}
		return max
	default:
		return 0
	}
}

// ComplexityScore rates the generated types from 1 (flat) to 10 (deeply
// nested and heterogeneous).
func (s ConversionStats) ComplexityScore() int {
	score := 0
	score += minInt(s.TypesCount, 10)
	score += minInt(s.FieldsCount/5, 10)
	score += minInt(s.MaxDepth*2, 10)
	score += minInt(s.OptionalFields, 5)
	score += minInt(maxInt(s.TypesCount-1, 0), 5)

	normalized := (score + 3) / 4
	if normalized < 1 {
		return 1
	}
	if normalized > 10 {
		return 10
	}
	return normalized
}

// ComplexityLabel returns a colored label for the complexity score.
func (s ConversionStats) ComplexityLabel(noColor bool) string {
	score := s.ComplexityScore()
	var c *color.Color
	var label string
	switch {
	case score <= 3:
		c, label = color.New(color.FgGreen), "Simple"
	case score <= 6:
		c, label = color.New(color.FgYellow), "Moderate"
	case score <= 9:
		c, label = color.New(color.FgRed), "Complex"
	default:
		c, label = color.New(color.FgRed, color.Bold), "Very Complex"
	}
	if noColor {
		c.DisableColor()
	}
	return c.Sprint(label)
}

// WriteReport prints the conversion summary.
func WriteReport(w io.Writer, stats ConversionStats, noColor bool) {
	Header(w, "Conversion Report", noColor)

	table := NewKeyValueTable(w, noColor)
	table.AddRow("Samples", fmt.Sprintf("%d", stats.SampleCount))
	table.AddRow("Types generated", fmt.Sprintf("%d", stats.TypesCount))
	table.AddRow("Fields", fmt.Sprintf("%d", stats.FieldsCount))
	table.AddRow("Optional fields", fmt.Sprintf("%d", stats.OptionalFields))
	table.AddRow("Array fields", fmt.Sprintf("%d", stats.ArrayFields))
	table.AddRow("Max nesting depth", fmt.Sprintf("%d", stats.MaxDepth))
	table.AddRow("Complexity", fmt.Sprintf("%s (%d/10)", stats.ComplexityLabel(noColor), stats.ComplexityScore()))
	if stats.InputSize > 0 {
		table.AddRow("Input size", formatBytes(stats.InputSize))
	}
	if stats.OutputSize > 0 {
		table.AddRow("Output size", formatBytes(stats.OutputSize))
	}
	if stats.Duration > 0 {
		table.AddRow("Duration", stats.Duration.Round(time.Microsecond).String())
	}
	table.Render()
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
