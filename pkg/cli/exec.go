package cli

import (
	"github.com/spf13/cobra"

	"github.com/grellus/pgdbc"
)

// NewExecCmd builds the `exec` command for write statements.
func NewExecCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql> [args...]",
		Short: "Run a write statement with optional bound parameters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := flags.open(pgdbc.CursorSlice)
			if err != nil {
				return err
			}
			defer h.Close()
			values := make([]any, 0, len(args)-1)
			for _, a := range args[1:] {
				values = append(values, a)
			}
			return h.Execute(args[0], values, pgdbc.LogQueries())
		},
	}
}
