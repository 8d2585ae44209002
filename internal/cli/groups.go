package cli

import (
	"github.com/spf13/cobra"

	"oeplot/internal/selection"
)

// NewGroupsCommand returns the root command of the oeplot-groups binary:
//
//	oeplot-groups <path> "node:entry[:color]&...|..."
func NewGroupsCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:   "oeplot-groups <path> <grouped-entries>",
		Short: "Plot groups of object entry logs",
		Long: `Plot groups of CSV logs stored as <path>/<node>/<entry>.csv.

Groups are separated by '|', entries within a group by '&', and the fields of
an entry by ':' as node:entry[:color]. Colors are checked before anything is
drawn. Each group is drawn and written before the next one is read.`,
		Example:           `  oeplot-groups ./logs "bms:soc:red&bms:current:blue|motor:phases"`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.ExactArgs(2),
		PersistentPreRunE: persistentPreRun(ctx),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := selection.ParseGroups(args[1])
			if err != nil {
				return err
			}
			runner, err := ctx.newRunner(cmd)
			if err != nil {
				return err
			}
			_, err = runner.PlotGroups(cmd.Context(), args[0], groups)
			return err
		},
	}

	flags.register(rootCmd)
	rootCmd.AddCommand(newConfigCommand(ctx))
	return rootCmd
}
