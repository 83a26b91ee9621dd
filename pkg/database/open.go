package database

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/jacksonlee411/staffsync/pkg/configuration"
)

func init() {
	sqlx.BindDriver(configuration.DriverSQLite, sqlx.QUESTION)
}

// SQLitePragmas are applied to every SQLite connection.
var SQLitePragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

// SQLiteDSN appends the connection parameters the repositories rely on to path.
func SQLiteDSN(path string) string {
	q := url.Values{}
	for _, p := range SQLitePragmas {
		q.Add("_pragma", p)
	}
	q.Set("_time_format", "sqlite")
	q.Set("_txlock", "immediate")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}

// Open connects with the configured driver and verifies the connection.
func Open(ctx context.Context, opts configuration.DatabaseOptions) (*sqlx.DB, error) {
	dsn := opts.ConnectionString()
	maxOpen := opts.MaxOpenConns
	if opts.Driver == configuration.DriverSQLite {
		dsn = SQLiteDSN(dsn)
		// SQLite allows a single writer.
		maxOpen = 1
	}

	db, err := sqlx.Open(opts.Driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", opts.Driver)
	}
	db.SetMaxOpenConns(maxOpen)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping %s database", opts.Driver)
	}
	return db, nil
}

// IsPostgres reports whether driverName speaks the Postgres dialect.
func IsPostgres(driverName string) bool {
	return driverName == configuration.DriverPgx || driverName == configuration.DriverPostgres
}
