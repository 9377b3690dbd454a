package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/grellus/pgdbc"
)

func version() string {
	return "v0.1.0"
}

type rootFlags struct {
	configFile string
	envKeys    []string
	verbose    bool
}

// open builds a connected handle from the shared flags. With --config the
// JSON file wins; otherwise the environment (optionally via --env-keys) is
// consulted.
func (f *rootFlags) open(kind pgdbc.CursorKind) (*pgdbc.Handle, error) {
	opts := []pgdbc.Option{pgdbc.WithCursor(kind)}
	if f.configFile != "" {
		opts = append(opts, pgdbc.WithConfigFromFile(f.configFile))
	} else {
		opts = append(opts, pgdbc.WithConfigFromEnv(f.envKeys...))
	}
	opts = append(opts, pgdbc.WithAutoConnect())
	return pgdbc.New(opts...)
}

// NewVersionCmd builds the `version` command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version())
		},
	}
}

// NewRootCmd builds the top–level `pgdbc` command.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "pgdbc",
		Short: "pgdbc — run statements against a configured PostgreSQL database",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flags.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "JSON config file (default: environment variables)")
	root.PersistentFlags().StringSliceVar(&flags.envKeys, "env-keys", nil, "five environment variable names: name,user,password,host,port")
	root.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "enable debug logging")
	root.AddCommand(NewPingCmd(flags))
	root.AddCommand(NewExecCmd(flags))
	root.AddCommand(NewQueryCmd(flags))
	root.AddCommand(NewVersionCmd())
	return root
}
