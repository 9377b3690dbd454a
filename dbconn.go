// Package pgdbc wraps a single PostgreSQL connection behind a small
// configure/connect/execute/close surface.
//
// A Handle is configured with five settings (database name, host, port,
// user, password) from explicit values, environment variables or a JSON
// file, then opens exactly one connection. It is not safe for concurrent
// use; callers needing that must synchronize externally.
package pgdbc

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/grellus/pgdbc/internal/pgdsn"
	"github.com/grellus/pgdbc/pkg/config"
)

// sessionTuning is issued once after connect, fire-and-forget. Servers
// older than PostgreSQL 14 reject the setting; the handle works without it.
const sessionTuning = "SET client_connection_check_interval TO 2000"

// Handle wraps one database connection and the cursor kind its reads use.
type Handle struct {
	cfg       config.Config
	cursor    CursorKind
	logger    *slog.Logger
	driver    string
	db        *sqlx.DB
	connected bool
}

// New builds a Handle. Auto-configuration options load settings
// immediately; WithAutoConnect additionally dials before returning.
func New(opts ...Option) (*Handle, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	h := &Handle{cursor: s.cursor, logger: s.logger, driver: s.driver}
	if s.cfg != nil {
		h.cfg = *s.cfg
	}
	if s.fromEnv {
		if err := h.ConfigureFromEnv(s.envKeys...); err != nil {
			return nil, err
		}
	}
	if s.fromFile {
		if err := h.ConfigureFromFile(s.filePath); err != nil {
			return nil, err
		}
	}
	if s.autoConnect {
		if err := h.Connect(); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// NewFromDB wraps an already-open connection, e.g. one owned by a test
// double. The handle starts connected; Close still closes the connection.
// Only WithConfig, WithCursor and WithLogger are honored here: the
// connection already exists, so the config-loading and auto-connect
// options have nothing to do and are ignored.
func NewFromDB(db *sql.DB, driverName string, opts ...Option) *Handle {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	h := &Handle{cursor: s.cursor, logger: s.logger, driver: driverName, db: sqlx.NewDb(db, driverName), connected: true}
	if s.cfg != nil {
		h.cfg = *s.cfg
	}
	return h
}

// Configure overwrites all five connection settings unconditionally.
func (h *Handle) Configure(name, host, port, user, password string) {
	h.cfg = config.Config{Name: name, Host: host, Port: port, User: user, Password: password}
}

// SetConfigValue overwrites a single connection setting. Accepted keys are
// name, host, port, user and password.
func (h *Handle) SetConfigValue(key, value string) error {
	switch key {
	case "name":
		h.cfg.Name = value
	case "host":
		h.cfg.Host = value
	case "port":
		h.cfg.Port = value
	case "user":
		h.cfg.User = value
	case "password":
		h.cfg.Password = value
	default:
		return fmt.Errorf("pgdbc: unknown config key %q", key)
	}
	return nil
}

// ConfigureFromEnv loads the settings from environment variables; see
// config.FromEnv for the key rules.
func (h *Handle) ConfigureFromEnv(keys ...string) error {
	cfg, err := config.FromEnv(keys...)
	if err != nil {
		return err
	}
	h.cfg = cfg
	return nil
}

// ConfigureFromFile loads the settings from a JSON file; see
// config.FromFile for the key rules.
func (h *Handle) ConfigureFromFile(path string) error {
	cfg, err := config.FromFile(path)
	if err != nil {
		return err
	}
	h.cfg = cfg
	return nil
}

// Connect validates the configuration and opens the underlying connection.
// Returns ErrAlreadyConnected on a connected handle and
// config.ErrIncomplete, before any dial, when a setting is empty.
func (h *Handle) Connect() error {
	if h.connected {
		return ErrAlreadyConnected
	}
	if err := h.cfg.Validate(); err != nil {
		return err
	}
	dsn := pgdsn.Build(h.cfg.Name, h.cfg.Host, h.cfg.Port, h.cfg.User, h.cfg.Password)
	db, err := sqlx.Connect(h.driver, dsn)
	if err != nil {
		h.logger.Error("could not connect to database",
			"database", h.cfg.Name, "host", h.cfg.Host, "port", h.cfg.Port, "error", err)
		return fmt.Errorf("pgdbc: connect to %s: %w", h.cfg.Name, err)
	}
	// Pin the pool to one session. ExecuteRead's rollback-and-retry only
	// makes sense when every statement shares that session.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if _, err := db.Exec(sessionTuning); err != nil {
		h.logger.Debug("session tuning statement rejected", "error", err)
	}
	h.db = db
	h.connected = true
	h.logger.Info("connected to database",
		"database", h.cfg.Name, "host", h.cfg.Host, "port", h.cfg.Port, "cursor", h.cursor.String())
	return nil
}

// Connected reports whether the handle holds an open connection.
func (h *Handle) Connected() bool {
	return h.connected
}

// Config returns a copy of the current connection settings.
func (h *Handle) Config() config.Config {
	return h.cfg
}

// Close releases the underlying connection and resets the handle to the
// not-connected state. Closing a handle that is not connected is a no-op.
func (h *Handle) Close() error {
	if !h.connected {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	h.connected = false
	h.logger.Info("closed database connection", "database", h.cfg.Name)
	if err != nil {
		return fmt.Errorf("pgdbc: close: %w", err)
	}
	return nil
}

func (h *Handle) ensureConnected(force bool) error {
	if h.connected {
		return nil
	}
	if !force {
		return ErrNotConnected
	}
	return h.Connect()
}
