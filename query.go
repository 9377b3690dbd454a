package pgdbc

import (
	"fmt"
)

// Execute runs a write statement with optional bound parameters. Without
// ForceConnect the handle must already be connected.
func (h *Handle) Execute(query string, values []any, opts ...QueryOption) error {
	o := applyQueryOptions(opts)
	if err := h.ensureConnected(o.forceConnect); err != nil {
		return err
	}
	if _, err := h.db.Exec(query, values...); err != nil {
		h.logger.Error("could not execute statement", "query", query, "error", err)
		return fmt.Errorf("pgdbc: execute: %w", err)
	}
	if o.log {
		h.logger.Info("statement executed", "query", query, "database", h.cfg.Name)
	}
	return nil
}

// ExecuteRead runs a read statement and returns its rows, shaped by the
// handle's cursor kind. By default only the first row is returned; FetchAll
// returns every row. When the session sits in an aborted transaction
// (SQLSTATE 25P02) the handle rolls back and retries the statement exactly
// once; any other error propagates unchanged.
func (h *Handle) ExecuteRead(query string, values []any, opts ...QueryOption) ([]Row, error) {
	o := applyQueryOptions(opts)
	if err := h.ensureConnected(o.forceConnect); err != nil {
		return nil, err
	}
	rows, err := h.readRows(query, values, o)
	if err == nil || !inFailedTransaction(err) {
		return rows, err
	}
	if _, rbErr := h.db.Exec("ROLLBACK"); rbErr != nil {
		return nil, fmt.Errorf("pgdbc: rollback aborted transaction: %w", rbErr)
	}
	h.logger.Warn("rolled back aborted transaction, retrying statement", "query", query)
	return h.readRows(query, values, o)
}

func (h *Handle) readRows(query string, values []any, o queryOptions) ([]Row, error) {
	rows, err := h.db.Queryx(query, values...)
	if err != nil {
		return nil, fmt.Errorf("pgdbc: query: %w", err)
	}
	defer rows.Close()
	limit := 1
	if o.fetchAll {
		limit = 0
	}
	out, err := scanRows(rows, h.cursor, limit)
	if err != nil {
		return nil, err
	}
	if o.log {
		h.logger.Info("query executed", "query", query, "database", h.cfg.Name, "rows", len(out))
	}
	return out, nil
}
