package commands

import (
	"github.com/spf13/cobra"

	"github.com/typeforge-dev/typeforge/codegen"
	"github.com/typeforge-dev/typeforge/internal/cli/ui"
)

// NewTargetsCommand creates the targets command
func NewTargetsCommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List available target languages",
		Long:  "List every target language the generate command accepts, with its output file extension.",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := ui.NewTable(cmd.OutOrStdout(), []string{"Target", "Language", "Extension"}, &ui.TableOptions{NoColor: noColor})
			for _, target := range codegen.Targets() {
				renderer, err := codegen.Lookup(target)
				if err != nil {
					return err
				}
				table.AddRow(target, renderer.Name(), "."+renderer.FileExtension())
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}
