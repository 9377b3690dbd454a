package pgdbc

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CursorKind selects the shape of the rows ExecuteRead returns.
type CursorKind int

const (
	// CursorMap returns rows keyed by column name, the default.
	CursorMap CursorKind = iota
	// CursorSlice returns rows as positional values only.
	CursorSlice
)

func (k CursorKind) String() string {
	switch k {
	case CursorMap:
		return "map"
	case CursorSlice:
		return "slice"
	default:
		return fmt.Sprintf("CursorKind(%d)", int(k))
	}
}

// ParseCursorKind maps the names "map" and "slice" onto a CursorKind.
func ParseCursorKind(s string) (CursorKind, error) {
	switch s {
	case "map":
		return CursorMap, nil
	case "slice":
		return CursorSlice, nil
	default:
		return 0, fmt.Errorf("pgdbc: invalid cursor kind %q (accepted: map, slice)", s)
	}
}

// Row is one result row. Values holds the columns in result order and is
// always populated; Map is populated only on handles using CursorMap.
type Row struct {
	Values []any
	Map    map[string]any
}

// scanRows drains rows into the requested representation. A limit of zero
// means all rows; otherwise scanning stops after limit rows.
func scanRows(rows *sqlx.Rows, kind CursorKind, limit int) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("pgdbc: columns: %w", err)
	}
	var out []Row
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("pgdbc: scan row: %w", err)
		}
		r := Row{Values: values}
		if kind == CursorMap {
			// Derived from the positional scan so duplicate column
			// names keep their positional values; the later column
			// wins the map entry.
			m := make(map[string]any, len(columns))
			for i, c := range columns {
				m[c] = values[i]
			}
			r.Map = m
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgdbc: iterate rows: %w", err)
	}
	return out, nil
}
