package pgdbc

import (
	"log/slog"

	"github.com/grellus/pgdbc/pkg/config"
)

// Option configures a Handle at construction time.
type Option func(*settings)

type settings struct {
	cfg         *config.Config
	fromEnv     bool
	envKeys     []string
	fromFile    bool
	filePath    string
	cursor      CursorKind
	autoConnect bool
	logger      *slog.Logger
	driver      string
}

func defaultSettings() settings {
	return settings{cursor: CursorMap, logger: slog.Default(), driver: "postgres"}
}

// WithConfig seeds the handle with an explicit configuration.
func WithConfig(cfg config.Config) Option {
	return func(s *settings) {
		c := cfg
		s.cfg = &c
	}
}

// WithConfigFromEnv loads the configuration from environment variables
// during New. With no keys the default variable names are used; a custom
// set must name exactly five variables.
func WithConfigFromEnv(keys ...string) Option {
	return func(s *settings) {
		s.fromEnv = true
		s.envKeys = keys
	}
}

// WithConfigFromFile loads the configuration from a JSON file during New.
// An empty path selects conn.json in the working directory.
func WithConfigFromFile(path string) Option {
	return func(s *settings) {
		s.fromFile = true
		s.filePath = path
	}
}

// WithCursor sets the row representation used by ExecuteRead.
func WithCursor(kind CursorKind) Option {
	return func(s *settings) {
		s.cursor = kind
	}
}

// WithAutoConnect makes New dial immediately after configuration.
func WithAutoConnect() Option {
	return func(s *settings) {
		s.autoConnect = true
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// QueryOption adjusts a single Execute or ExecuteRead call.
type QueryOption func(*queryOptions)

type queryOptions struct {
	forceConnect bool
	fetchAll     bool
	log          bool
}

// ForceConnect lets the call dial first when the handle is not connected,
// instead of failing with ErrNotConnected.
func ForceConnect() QueryOption {
	return func(o *queryOptions) {
		o.forceConnect = true
	}
}

// FetchAll makes ExecuteRead return every matching row instead of only the
// first one.
func FetchAll() QueryOption {
	return func(o *queryOptions) {
		o.fetchAll = true
	}
}

// LogQueries logs the statement at Info level after it executes.
func LogQueries() QueryOption {
	return func(o *queryOptions) {
		o.log = true
	}
}

func applyQueryOptions(opts []QueryOption) queryOptions {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
