package pgdbc_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grellus/pgdbc"
	"github.com/grellus/pgdbc/pkg/config"
)

// TestConnect covers the happy path through a mocked dial: the ping, the
// fire-and-forget tuning statement, the single-connection pinning and the
// state transition.
func TestConnect(t *testing.T) {
	dsn := "dbname=billing host=localhost port=5432 user=postgres password=secret"
	mockDB, mock, err := sqlmock.NewWithDSN(dsn, sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectPing()
	mock.ExpectExec(`SET client_connection_check_interval TO 2000`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectClose()

	h, err := pgdbc.New(
		pgdbc.WithConfig(config.Config{
			Name: "billing", Host: "localhost", Port: "5432", User: "postgres", Password: "secret",
		}),
		pgdbc.WithDriverName("sqlmock"),
	)
	require.NoError(t, err)

	require.NoError(t, h.Connect())
	assert.True(t, h.Connected())
	assert.Equal(t, 1, pgdbc.MaxOpenConns(h))

	assert.NoError(t, h.Close())
	assert.False(t, h.Connected())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestConnectTuningRejected ensures the session tuning statement is
// fire-and-forget: a server that rejects it does not fail the connect.
func TestConnectTuningRejected(t *testing.T) {
	dsn := "dbname=legacy host=localhost port=5432 user=postgres password=secret"
	mockDB, mock, err := sqlmock.NewWithDSN(dsn, sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectPing()
	mock.ExpectExec(`SET client_connection_check_interval TO 2000`).
		WillReturnError(errors.New(`unrecognized configuration parameter "client_connection_check_interval"`))

	h, err := pgdbc.New(
		pgdbc.WithConfig(config.Config{
			Name: "legacy", Host: "localhost", Port: "5432", User: "postgres", Password: "secret",
		}),
		pgdbc.WithDriverName("sqlmock"),
	)
	require.NoError(t, err)

	assert.NoError(t, h.Connect())
	assert.True(t, h.Connected())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestConnectIncompleteConfig ensures Connect rejects an empty field
// before any dial is attempted.
func TestConnectIncompleteConfig(t *testing.T) {
	h, err := pgdbc.New()
	require.NoError(t, err)

	h.Configure("billing", "localhost", "5432", "postgres", "")

	err = h.Connect()
	assert.ErrorIs(t, err, config.ErrIncomplete)
	assert.False(t, h.Connected())
}

func TestConnectAlreadyConnected(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	h := pgdbc.NewFromDB(mockDB, "sqlmock")

	assert.ErrorIs(t, h.Connect(), pgdbc.ErrAlreadyConnected)
	assert.True(t, h.Connected())
}

// TestCloseTwice checks the chosen close policy: the first call closes the
// connection, the second is a no-op.
func TestCloseTwice(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectClose()

	h := pgdbc.NewFromDB(mockDB, "sqlmock")

	assert.NoError(t, h.Close())
	assert.False(t, h.Connected())
	assert.NoError(t, h.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryMethodsRequireConnection(t *testing.T) {
	h, err := pgdbc.New(pgdbc.WithConfig(config.Config{
		Name: "billing", Host: "localhost", Port: "5432", User: "postgres", Password: "secret",
	}))
	require.NoError(t, err)

	err = h.Execute("DELETE FROM sessions", nil)
	assert.ErrorIs(t, err, pgdbc.ErrNotConnected)

	_, err = h.ExecuteRead("SELECT * FROM sessions", nil)
	assert.ErrorIs(t, err, pgdbc.ErrNotConnected)
}

// TestForceConnectValidatesFirst ensures ForceConnect on an unconfigured
// handle still fails on validation, not on a network call.
func TestForceConnectValidatesFirst(t *testing.T) {
	h, err := pgdbc.New()
	require.NoError(t, err)

	err = h.Execute("SELECT 1", nil, pgdbc.ForceConnect())
	assert.ErrorIs(t, err, config.ErrIncomplete)
}

func TestNewConfigureFromFileFailure(t *testing.T) {
	_, err := pgdbc.New(pgdbc.WithConfigFromFile("testdata/does-not-exist.json"))
	assert.Error(t, err)
}

func TestConfigureOverwritesAllFields(t *testing.T) {
	h, err := pgdbc.New(pgdbc.WithConfig(config.Config{Name: "old"}))
	require.NoError(t, err)

	h.Configure("billing", "db.internal", "5433", "svc", "secret")

	assert.Equal(t, config.Config{
		Name: "billing", Host: "db.internal", Port: "5433", User: "svc", Password: "secret",
	}, h.Config())
}

func TestSetConfigValue(t *testing.T) {
	h, err := pgdbc.New(pgdbc.WithConfig(config.Config{
		Name: "billing", Host: "localhost", Port: "5432", User: "postgres", Password: "old",
	}))
	require.NoError(t, err)

	require.NoError(t, h.SetConfigValue("password", "rotated"))
	assert.Equal(t, "rotated", h.Config().Password)

	err = h.SetConfigValue("schema", "public")
	assert.ErrorContains(t, err, "unknown config key")
}

// TestNewFromDBOptions checks the options NewFromDB documents as honored.
func TestNewFromDBOptions(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	h := pgdbc.NewFromDB(mockDB, "sqlmock",
		pgdbc.WithConfig(config.Config{Name: "billing"}),
		pgdbc.WithCursor(pgdbc.CursorSlice),
	)

	assert.True(t, h.Connected())
	assert.Equal(t, "billing", h.Config().Name)
}

func TestParseCursorKind(t *testing.T) {
	kind, err := pgdbc.ParseCursorKind("map")
	assert.NoError(t, err)
	assert.Equal(t, pgdbc.CursorMap, kind)

	kind, err = pgdbc.ParseCursorKind("slice")
	assert.NoError(t, err)
	assert.Equal(t, pgdbc.CursorSlice, kind)

	_, err = pgdbc.ParseCursorKind("tuple")
	assert.Error(t, err)
}
