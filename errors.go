package pgdbc

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotConnected is returned by query methods when the handle has no
	// open connection and ForceConnect was not requested.
	ErrNotConnected = errors.New("pgdbc: no database connected")

	// ErrAlreadyConnected is returned by Connect on a handle that already
	// holds an open connection.
	ErrAlreadyConnected = errors.New("pgdbc: already connected")
)

// failedTransactionCode is SQLSTATE 25P02 (in_failed_sql_transaction): the
// session sits in an aborted transaction and rejects statements until a
// rollback.
const failedTransactionCode = "25P02"

func inFailedTransaction(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == failedTransactionCode
}
