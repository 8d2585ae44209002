package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"oeplot/internal/entrylog"
	"oeplot/internal/plotrun"
	"oeplot/internal/selection"
)

type inspection struct {
	Selector selection.Selector       `json:"selector"`
	Path     string                   `json:"path"`
	Rows     int                      `json:"rows"`
	Columns  []entrylog.ColumnSummary `json:"columns"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect <path> <node> <entry>",
		Short: "Summarize the columns of one entry log",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sels, err := selection.ParsePairs(args[1:])
			if err != nil {
				return err
			}
			sel := sels[0]
			path := entrylog.Path(args[0], sel.Node, sel.Entry)
			table, err := entrylog.Load(path, entrylog.Options{Delimiter: cfg.DelimiterRune()})
			if err != nil {
				return err
			}

			result := inspection{
				Selector: sel,
				Path:     path,
				Rows:     table.NumRows(),
				Columns:  entrylog.Summarize(table),
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			for _, line := range renderSectionHeader(sel.Label(), plotrun.ShouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "File: %s\nRows: %d\n", result.Path, result.Rows)

			rows := make([][]string, 0, len(result.Columns))
			for _, c := range result.Columns {
				minV, maxV, mean, distinct := "-", "-", "-", "-"
				if c.Kind == entrylog.KindNumeric {
					minV, maxV, mean = formatStat(c.Min), formatStat(c.Max), formatStat(c.Mean)
				}
				if c.Kind == entrylog.KindText {
					distinct = strconv.Itoa(c.Distinct)
				}
				rows = append(rows, []string{
					c.Name, c.Kind, strconv.Itoa(c.Count), strconv.Itoa(c.Missing), minV, maxV, mean, distinct,
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				textColumn("Column"), textColumn("Kind"),
				numericColumn("Count"), numericColumn("Missing"),
				numericColumn("Min"), numericColumn("Max"), numericColumn("Mean"),
				numericColumn("Distinct"),
			}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func formatStat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}
