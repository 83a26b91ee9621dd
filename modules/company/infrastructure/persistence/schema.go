package persistence

import (
	"context"
	"embed"
	"strings"

	gerrors "github.com/go-faster/errors"

	"github.com/jacksonlee411/staffsync/pkg/composables"
	"github.com/jacksonlee411/staffsync/pkg/database"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// SchemaFor returns the DDL for the dialect behind driverName.
func SchemaFor(driverName string) (string, error) {
	name := "schema/sqlite.sql"
	if database.IsPostgres(driverName) {
		name = "schema/postgres.sql"
	}
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return "", gerrors.Wrapf(err, "read %s", name)
	}
	return string(raw), nil
}

// EnsureSchema creates the company tables when they are missing. Existing tables are left untouched.
func EnsureSchema(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	ddl, err := SchemaFor(tx.DriverName())
	if err != nil {
		return err
	}
	for _, stmt := range splitStatements(ddl) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return gerrors.Wrapf(err, "apply schema statement %q", firstLine(stmt))
		}
	}
	return nil
}

func splitStatements(ddl string) []string {
	parts := strings.Split(ddl, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
