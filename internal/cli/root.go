package cli

import (
	"github.com/spf13/cobra"

	"oeplot/internal/selection"
)

// NewPlotCommand returns the root command of the oeplot binary:
//
//	oeplot <path> <node> <entry> [<node> <entry> ...] [-m|--multiple]
func NewPlotCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)
	var multiple bool

	rootCmd := &cobra.Command{
		Use:   "oeplot <path> <node> <entry> [<node> <entry> ...]",
		Short: "Plot object entry logs",
		Long: `Plot the CSV logs stored as <path>/<node>/<entry>.csv. Two-column logs
share one chart; wider logs get one stacked panel per value column.

A log root named list, inspect, or config is read as a subcommand. Write it
with a path prefix instead, for example ./list.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: persistentPreRun(ctx),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			selectors, err := selection.ParsePairs(args[1:])
			if err != nil {
				return err
			}
			runner, err := ctx.newRunner(cmd)
			if err != nil {
				return err
			}
			_, err = runner.Plot(cmd.Context(), args[0], selectors, multiple)
			return err
		},
	}

	flags.register(rootCmd)
	rootCmd.Flags().BoolVarP(&multiple, "multiple", "m", false, "Draw every entry in its own figure")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
