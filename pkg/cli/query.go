package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grellus/pgdbc"
)

// NewQueryCmd builds the `query` command: run a read statement and print
// the rows as JSON, one object or array per line.
func NewQueryCmd(flags *rootFlags) *cobra.Command {
	var (
		all        bool
		cursorName string
	)

	cmd := &cobra.Command{
		Use:   "query <sql> [args...]",
		Short: "Run a read statement and print the result rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := pgdbc.ParseCursorKind(cursorName)
			if err != nil {
				return err
			}
			h, err := flags.open(kind)
			if err != nil {
				return err
			}
			defer h.Close()

			values := make([]any, 0, len(args)-1)
			for _, a := range args[1:] {
				values = append(values, a)
			}
			opts := []pgdbc.QueryOption{}
			if all {
				opts = append(opts, pgdbc.FetchAll())
			}
			rows, err := h.ExecuteRead(args[0], values, opts...)
			if err != nil {
				return err
			}
			for _, row := range rows {
				var payload any = row.Values
				if kind == pgdbc.CursorMap {
					payload = row.Map
				}
				line, err := json.Marshal(payload)
				if err != nil {
					return fmt.Errorf("marshal row: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(line))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "return every matching row instead of the first")
	cmd.Flags().StringVar(&cursorName, "cursor", "map", "row representation: map or slice")
	return cmd
}
