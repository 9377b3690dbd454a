// Package config loads the five connection settings a handle needs,
// either from environment variables or from a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
)

// DefaultEnvKeys are the environment variables FromEnv reads when no custom
// key set is given, in the order: name, user, password, host, port.
var DefaultEnvKeys = [5]string{"DBN", "DBU", "DBK", "DBH", "DBP"}

// DefaultFileName is the JSON file FromFile falls back to when called with
// an empty path, resolved against the working directory.
const DefaultFileName = "conn.json"

// fileKeys are the exact keys a JSON config file must carry.
var fileKeys = [5]string{"db_name", "db_host", "db_port", "db_user", "db_pass"}

var (
	// ErrKeyCount is returned when a custom env key set is not exactly
	// five entries long.
	ErrKeyCount = errors.New("config: env key set must have exactly 5 entries")

	// ErrIncomplete is returned by Validate when any field is empty.
	ErrIncomplete = errors.New("config: incomplete connection settings")
)

// Config holds the settings for one database connection. Each handle owns
// its own value; nothing here is shared between instances.
type Config struct {
	Name     string
	Host     string
	Port     string
	User     string
	Password string
}

// FromEnv reads the connection settings from environment variables. With no
// arguments the DefaultEnvKeys are used; a custom set must name exactly five
// variables in the same order.
func FromEnv(keys ...string) (Config, error) {
	switch len(keys) {
	case 0:
		keys = DefaultEnvKeys[:]
	case 5:
	default:
		return Config{}, fmt.Errorf("%w, got %d", ErrKeyCount, len(keys))
	}
	// Pick up a .env file when one is present. Values already set in the
	// real environment win; a missing file is not an error.
	godotenv.Load()
	return Config{
		Name:     os.Getenv(keys[0]),
		User:     os.Getenv(keys[1]),
		Password: os.Getenv(keys[2]),
		Host:     os.Getenv(keys[3]),
		Port:     os.Getenv(keys[4]),
	}, nil
}

// FromFile reads the connection settings from a JSON file. The object must
// carry exactly the keys db_name, db_host, db_port, db_user and db_pass;
// unknown or missing keys fail before any connection attempt. An empty path
// selects DefaultFileName.
func FromFile(path string) (Config, error) {
	if path == "" {
		path = DefaultFileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", filepath.Base(path), err)
	}
	if err := checkFileKeys(raw); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", filepath.Base(path), err)
	}
	return Config{
		Name:     raw["db_name"],
		Host:     raw["db_host"],
		Port:     raw["db_port"],
		User:     raw["db_user"],
		Password: raw["db_pass"],
	}, nil
}

func checkFileKeys(raw map[string]string) error {
	want := map[string]bool{}
	for _, k := range fileKeys {
		want[k] = true
	}
	var missing, unknown []string
	for _, k := range fileKeys {
		if _, ok := raw[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range raw {
		if !want[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	if len(missing) > 0 {
		return fmt.Errorf("missing keys %v (need exactly %v)", missing, fileKeys)
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown keys %v (need exactly %v)", unknown, fileKeys)
	}
	return nil
}

// Validate reports ErrIncomplete naming the first empty field. A connection
// attempt must not be made while this fails.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"host", c.Host},
		{"port", c.Port},
		{"user", c.User},
		{"password", c.Password},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s is empty", ErrIncomplete, f.name)
		}
	}
	return nil
}
