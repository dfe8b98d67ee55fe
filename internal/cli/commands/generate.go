package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/typeforge-dev/typeforge/codegen"
	"github.com/typeforge-dev/typeforge/infer"
	"github.com/typeforge-dev/typeforge/internal/cli/config"
	"github.com/typeforge-dev/typeforge/internal/cli/ui"
	"github.com/typeforge-dev/typeforge/parse"
	"github.com/typeforge-dev/typeforge/schema"
)

// generateParams carries everything one generation run needs. The watch
// command reuses it to regenerate on file changes.
type generateParams struct {
	inputs   []string
	format   string
	target   string
	rootName string
	output   string
	inferOpt infer.Options
	render   codegen.Options
	quiet    bool
	noColor  bool
}

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	var (
		output        string
		format        string
		target        string
		rootName      string
		mapThreshold  int
		mapUnionLimit int
		indent        string
		comments      bool
		strict        bool
		readonly      bool
		derive        []string
		privateFields bool
		quiet         bool
		noColor       bool
		interactive   bool
	)

	cmd := &cobra.Command{
		Use:     "generate [samples...]",
		Aliases: []string{"gen", "g"},
		Short:   "Generate type declarations from sample files",
		Long: `Generate type declarations from one or more JSON, YAML, or TOML samples.

All samples must describe the same logical entity; heterogeneous samples are
unified, so a field missing from some samples becomes optional and a field
with conflicting types becomes a union.

Pass '-' to read a single sample from stdin.

Examples:
  typeforge generate user.json --target typescript
  typeforge generate day1.json day2.json --target rust -o types.rs
  cat response.json | typeforge generate - --target zod
  typeforge generate config.toml --target python --name Config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), nil, noColor))
				return err
			}

			p := generateParams{
				inputs:   args,
				format:   format,
				output:   output,
				target:   cfg.Target,
				rootName: cfg.Infer.RootName,
				inferOpt: infer.Options{
					MapThreshold:  cfg.Infer.MapThreshold,
					MapUnionLimit: cfg.Infer.MapUnionLimit,
				},
				render: codegen.Options{
					Indent:          cfg.Output.Indent,
					IncludeComments: cfg.Output.IncludeComments,
					Strict:          cfg.Output.Strict,
					Readonly:        cfg.TS.Readonly,
					DeriveMacros:    cfg.Rust.DeriveMacros,
					PrivateFields:   cfg.Rust.PrivateFields,
				},
				quiet:   quiet,
				noColor: noColor,
			}

			// Flags override config file settings.
			if cmd.Flags().Changed("target") {
				p.target = target
			}
			if cmd.Flags().Changed("name") {
				p.rootName = rootName
			}
			if cmd.Flags().Changed("map-threshold") {
				p.inferOpt.MapThreshold = mapThreshold
			}
			if cmd.Flags().Changed("map-union-limit") {
				p.inferOpt.MapUnionLimit = mapUnionLimit
			}
			if cmd.Flags().Changed("indent") {
				p.render.Indent = indent
			}
			if cmd.Flags().Changed("include-comments") {
				p.render.IncludeComments = comments
			}
			if cmd.Flags().Changed("strict") {
				p.render.Strict = strict
			}
			if cmd.Flags().Changed("readonly") {
				p.render.Readonly = readonly
			}
			if cmd.Flags().Changed("derive") {
				p.render.DeriveMacros = derive
			}
			if cmd.Flags().Changed("private-fields") {
				p.render.PrivateFields = privateFields
			}

			if interactive {
				if err := promptGenerateParams(&p); err != nil {
					return err
				}
			}
			if len(p.inputs) == 0 {
				return fmt.Errorf("no sample files given\n\nUsage: typeforge generate <samples...>")
			}

			return runGenerate(cmd.OutOrStdout(), cmd.ErrOrStderr(), p)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Force input format: json, yaml, or toml")
	cmd.Flags().StringVarP(&target, "target", "t", "typescript", "Target language")
	cmd.Flags().StringVarP(&rootName, "name", "n", "Root", "Name for the root type")
	cmd.Flags().IntVar(&mapThreshold, "map-threshold", infer.DefaultMapThreshold, "Objects with more keys than this may become maps")
	cmd.Flags().IntVar(&mapUnionLimit, "map-union-limit", infer.DefaultMapUnionLimit, "Maximum union size for map value types")
	cmd.Flags().StringVar(&indent, "indent", "", "Indentation unit (default: target convention)")
	cmd.Flags().BoolVar(&comments, "include-comments", false, "Annotate declarations with provenance comments")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of falling back to any-typed constructs")
	cmd.Flags().BoolVar(&readonly, "readonly", false, "Mark TypeScript fields readonly")
	cmd.Flags().StringSliceVar(&derive, "derive", nil, "Rust derive macros (default: Debug,Clone,Serialize,Deserialize)")
	cmd.Flags().BoolVar(&privateFields, "private-fields", false, "Drop pub from Rust struct fields")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the conversion report")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for samples, target, and root name")

	return cmd
}

// promptGenerateParams fills missing parameters interactively.
func promptGenerateParams(p *generateParams) error {
	if len(p.inputs) == 0 {
		var files string
		prompt := &survey.Input{
			Message: "Sample files (space-separated):",
		}
		if err := survey.AskOne(prompt, &files, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
		p.inputs = strings.Fields(files)
	}

	targetPrompt := &survey.Select{
		Message: "Target language:",
		Options: codegen.Targets(),
		Default: p.target,
	}
	if err := survey.AskOne(targetPrompt, &p.target); err != nil {
		return err
	}

	namePrompt := &survey.Input{
		Message: "Root type name:",
		Default: p.rootName,
	}
	return survey.AskOne(namePrompt, &p.rootName)
}

// runGenerate executes one full parse-infer-render pass.
func runGenerate(out, errOut io.Writer, p generateParams) error {
	started := time.Now()

	renderer, err := codegen.Lookup(p.target)
	if err != nil {
		fmt.Fprint(errOut, ui.UnknownTargetError(p.target, codegen.Targets(), p.noColor))
		return err
	}

	samples, inputSize, err := loadSamples(errOut, p)
	if err != nil {
		return err
	}

	// Inference has no per-file progress, so large sample sets get a spinner
	// instead of a bar.
	var graph *schema.Graph
	var code string
	build := func() error {
		var err error
		graph, err = infer.Infer(samples, p.rootName, p.inferOpt)
		if err != nil {
			return err
		}
		code, err = renderer.Render(graph, p.render)
		return err
	}
	if len(samples) > 3 && !p.quiet {
		err = ui.WithSpinner(errOut, "Inferring types", p.noColor, build)
	} else {
		err = build()
	}
	if err != nil {
		return err
	}

	if p.output != "" {
		if err := os.WriteFile(p.output, []byte(code), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if !p.quiet {
			ui.WriteSuccess(errOut, fmt.Sprintf("Wrote %s (%s)", p.output, renderer.Name()), p.noColor)
		}
	} else {
		fmt.Fprint(out, code)
	}

	if !p.quiet {
		stats := ui.StatsFromGraph(graph)
		stats.Duration = time.Since(started)
		stats.SampleCount = len(samples)
		stats.InputSize = inputSize
		stats.OutputSize = len(code)
		ui.WriteReport(errOut, stats, p.noColor)
	}
	return nil
}

// loadSamples reads and parses every input. A progress bar is shown when
// there are enough files for one to be useful.
func loadSamples(errOut io.Writer, p generateParams) ([]schema.Value, int, error) {
	samples := make([]schema.Value, 0, len(p.inputs))
	totalSize := 0

	parseOne := func(path string) error {
		data, source, err := readSample(path)
		if err != nil {
			return err
		}
		totalSize += len(data)

		format, err := resolveFormat(path, p.format)
		if err != nil {
			return err
		}
		v, err := parse.Parse(data, format, source)
		if err != nil {
			fmt.Fprint(errOut, ui.ParseFailedError(source, err, p.noColor))
			return err
		}
		samples = append(samples, v)
		return nil
	}

	if len(p.inputs) > 3 && !p.quiet {
		err := ui.WithProgress(errOut, "Parsing samples", len(p.inputs), p.noColor, func(bar *ui.ProgressBar) error {
			for _, path := range p.inputs {
				if err := parseOne(path); err != nil {
					return err
				}
				bar.Add(1)
			}
			return nil
		})
		if err != nil {
			return nil, 0, err
		}
		return samples, totalSize, nil
	}

	for _, path := range p.inputs {
		if err := parseOne(path); err != nil {
			return nil, 0, err
		}
	}
	return samples, totalSize, nil
}

func readSample(path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, "stdin", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read sample: %w", err)
	}
	return data, path, nil
}

// resolveFormat picks the input format: an explicit flag wins, then the file
// extension, then JSON for stdin.
func resolveFormat(path, forced string) (parse.Format, error) {
	if forced != "" {
		return parse.ParseFormat(forced)
	}
	if format, ok := parse.DetectFormat(path); ok {
		return format, nil
	}
	if path == "-" {
		return parse.FormatJSON, nil
	}
	return "", fmt.Errorf("cannot detect format of %q; use --format", path)
}
