package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/typeforge-dev/typeforge/codegen"
	"github.com/typeforge-dev/typeforge/infer"
	"github.com/typeforge-dev/typeforge/internal/cli/config"
	"github.com/typeforge-dev/typeforge/internal/cli/ui"
	"github.com/typeforge-dev/typeforge/internal/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var (
		output   string
		format   string
		target   string
		rootName string
		verbose  bool
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "watch [samples...]",
		Short: "Regenerate types whenever sample files change",
		Long: `Watch sample files and regenerate the type declarations on every change.

An output file is required: regenerating into a pipe would interleave
successive generations.

Examples:
  typeforge watch user.json --target typescript -o user.ts
  typeforge watch samples/*.json --target rust -o src/types.rs --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("no sample files given\n\nUsage: typeforge watch <samples...> -o <output>")
			}
			if output == "" {
				return fmt.Errorf("watch requires --output")
			}

			cfg, err := config.Load()
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), nil, noColor))
				return err
			}

			logger, err := newWatchLogger(verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()
			log := logger.Sugar()

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
				quiet:   true,
				noColor: noColor,
			}
			if cmd.Flags().Changed("target") {
				p.target = target
			}
			if cmd.Flags().Changed("name") {
				p.rootName = rootName
			}

			// A broken sample must not kill the watch session; warn and keep
			// waiting for the next save.
			regenerate := func(changed []string) error {
				log.Infow("regenerating", "changed", changed)
				if err := runGenerate(cmd.OutOrStdout(), cmd.ErrOrStderr(), p); err != nil {
					fmt.Fprint(cmd.ErrOrStderr(), ui.Warning(
						fmt.Sprintf("Regeneration failed: %v. Still watching.", err), nil, noColor))
					return err
				}
				ui.WriteSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Regenerated %s", p.output), noColor)
				return nil
			}

			// Generate once up front so the output exists before the first
			// change arrives.
			if err := runGenerate(cmd.OutOrStdout(), cmd.ErrOrStderr(), p); err != nil {
				return err
			}
			ui.WriteSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Generated %s", p.output), noColor)

			watcher, err := watch.NewSampleWatcher(args, log, regenerate)
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}
			if err := watcher.Start(); err != nil {
				return fmt.Errorf("failed to start watcher: %w", err)
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			banner := color.New(color.FgCyan, color.Bold)
			banner.Fprintf(cmd.ErrOrStderr(), "\nWatching %d sample file(s), writing %s\n", len(args), p.output)
			color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "Press Ctrl+C to stop")

			<-sigChan

			fmt.Fprintln(cmd.ErrOrStderr(), "\nShutting down...")
			return watcher.Stop()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Force input format: json, yaml, or toml")
	cmd.Flags().StringVarP(&target, "target", "t", "typescript", "Target language")
	cmd.Flags().StringVarP(&rootName, "name", "n", "Root", "Name for the root type")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show debug logging")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

func newWatchLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
