package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grellus/pgdbc"
)

// NewPingCmd builds the `ping` command: connect, run a trivial read and
// report the round-trip time.
func NewPingCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Connect to the configured database and report the round-trip",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			h, err := flags.open(pgdbc.CursorSlice)
			if err != nil {
				return err
			}
			defer h.Close()
			if _, err := h.ExecuteRead("SELECT 1", nil); err != nil {
				return err
			}
			cfg := h.Config()
			fmt.Fprintf(cmd.OutOrStdout(), "%s@%s:%s ok (%s)\n",
				cfg.Name, cfg.Host, cfg.Port, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}
