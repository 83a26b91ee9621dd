package repo

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Tx is satisfied by *sqlx.DB and *sqlx.Tx so repositories can run
// the same statements inside and outside a transaction.
type Tx interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

var (
	_ Tx = (*sqlx.DB)(nil)
	_ Tx = (*sqlx.Tx)(nil)
)
