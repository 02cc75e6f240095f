package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes raised when a concurrent transaction invalidated this one
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// SerializableTxOptions are used for transactions that read the bid ledger
// and write decisions derived from it
var SerializableTxOptions = pgx.TxOptions{IsoLevel: pgx.Serializable}

// IsSerializationFailure reports whether err (or anything it wraps) is a
// Postgres serialization failure or deadlock, both of which are safe to retry
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
}
