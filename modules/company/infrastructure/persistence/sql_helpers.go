package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jacksonlee411/staffsync/pkg/database"
	"github.com/jacksonlee411/staffsync/pkg/repo"
)

// ErrForeignKeyViolation marks writes rejected by a foreign key constraint.
var ErrForeignKeyViolation = gerrors.New("foreign key violation")

const pgForeignKeyViolation = "23503"

// forUpdate appends a row lock on dialects that support one. SQLite transactions
// take the database write lock at BEGIN instead.
func forUpdate(tx repo.Tx, query string) string {
	if database.IsPostgres(tx.DriverName()) {
		return query + " FOR UPDATE"
	}
	return query
}

// selectIn runs query with its IN (?) placeholder expanded for ids. Empty ids select nothing.
func selectIn(ctx context.Context, tx repo.Tx, dest interface{}, query string, ids []int64, args ...interface{}) error {
	if len(ids) == 0 {
		return nil
	}
	q, inArgs, err := sqlx.In(query, append(args, ids)...)
	if err != nil {
		return gerrors.Wrap(err, "expand IN clause")
	}
	return tx.SelectContext(ctx, dest, tx.Rebind(q), inArgs...)
}

// groupEdges folds edge rows into related ids per owner, preserving row order.
func groupEdges(rows []edgeRow) map[int64][]int64 {
	out := make(map[int64][]int64)
	for _, r := range rows {
		out[r.OwnerID] = append(out[r.OwnerID], r.RelatedID)
	}
	return out
}

// insertEdges writes employee_projects pairs in a single statement.
func insertEdges(ctx context.Context, tx repo.Tx, pairs [][2]int64) error {
	if len(pairs) == 0 {
		return nil
	}
	values := make([]string, 0, len(pairs))
	args := make([]interface{}, 0, len(pairs)*2)
	for _, p := range pairs {
		values = append(values, "(?, ?)")
		args = append(args, p[0], p[1])
	}
	q := fmt.Sprintf(
		"INSERT INTO employee_projects (employee_id, project_id) VALUES %s ON CONFLICT DO NOTHING",
		strings.Join(values, ", "),
	)
	if _, err := tx.ExecContext(ctx, tx.Rebind(q), args...); err != nil {
		return mapStoreError(err)
	}
	return nil
}

// mapStoreError tags foreign key failures from any supported driver with ErrForeignKeyViolation.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgForeignKeyViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return false
}
