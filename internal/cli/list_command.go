package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"oeplot/internal/entrylog"
)

type listedEntry struct {
	entrylog.EntryFile
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
	Error   string `json:"error,omitempty"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list <path>",
		Short: "List the node/entry logs found under a logging root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			files, err := entrylog.Discover(args[0])
			if err != nil {
				return err
			}

			opts := entrylog.Options{Delimiter: cfg.DelimiterRune()}
			listed := make([]listedEntry, 0, len(files))
			for _, f := range files {
				item := listedEntry{EntryFile: f}
				table, err := entrylog.Load(f.Path, opts)
				if err != nil {
					item.Error = err.Error()
				} else {
					item.Columns = table.NumColumns()
					item.Rows = table.NumRows()
				}
				listed = append(listed, item)
			}

			if jsonOutput {
				return writeJSON(cmd, listed)
			}

			out := cmd.OutOrStdout()
			if len(listed) == 0 {
				fmt.Fprintf(out, "No entry logs found under %s\n", args[0])
				return nil
			}
			rows := make([][]string, 0, len(listed))
			for _, item := range listed {
				status := "ok"
				columns, count := strconv.Itoa(item.Columns), strconv.Itoa(item.Rows)
				if item.Error != "" {
					status = item.Error
					columns, count = "-", "-"
				}
				rows = append(rows, []string{item.Node, item.Entry, columns, count, status})
			}
			fmt.Fprintln(out, renderTable([]column{
				textColumn("Node"), textColumn("Entry"), numericColumn("Columns"), numericColumn("Rows"), textColumn("Status"),
			}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
