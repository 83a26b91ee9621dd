// Package itf builds throwaway SQLite databases for integration tests.
package itf

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/staffsync/modules/company/infrastructure/persistence"
	"github.com/jacksonlee411/staffsync/modules/company/seed"
	"github.com/jacksonlee411/staffsync/pkg/composables"
	"github.com/jacksonlee411/staffsync/pkg/configuration"
	"github.com/jacksonlee411/staffsync/pkg/database"
)

type TestEnvironment struct {
	DB   *sqlx.DB
	Ctx  context.Context
	Logs *bytes.Buffer
}

type TestContext struct {
	seed bool
}

// NewTestContext returns a builder that seeds the reference dataset by default.
func NewTestContext() *TestContext {
	return &TestContext{seed: true}
}

// WithoutSeed creates the tables but leaves them empty.
func (tc *TestContext) WithoutSeed() *TestContext {
	tc.seed = false
	return tc
}

// Build opens a fresh database file under tb.TempDir and closes it on cleanup.
func (tc *TestContext) Build(tb testing.TB) *TestEnvironment {
	tb.Helper()

	db, err := database.Open(context.Background(), configuration.DatabaseOptions{
		Driver:       configuration.DriverSQLite,
		Path:         filepath.Join(tb.TempDir(), "company.db"),
		MaxOpenConns: 1,
	})
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() { _ = db.Close() })

	logs := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(logs)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	ctx := composables.WithDB(context.Background(), db)
	ctx = composables.WithLogger(ctx, logrus.NewEntry(logger))

	if tc.seed {
		if err := seed.Run(ctx); err != nil {
			tb.Fatal(err)
		}
	} else if err := persistence.EnsureSchema(ctx); err != nil {
		tb.Fatal(err)
	}

	return &TestEnvironment{DB: db, Ctx: ctx, Logs: logs}
}

// Setup is shorthand for NewTestContext().Build(tb).
func Setup(tb testing.TB) *TestEnvironment {
	tb.Helper()
	return NewTestContext().Build(tb)
}

// Count runs a COUNT query and returns its value, failing the test on error.
func (env *TestEnvironment) Count(tb testing.TB, query string, args ...interface{}) int {
	tb.Helper()
	var n int
	if err := env.DB.GetContext(env.Ctx, &n, env.DB.Rebind(query), args...); err != nil {
		tb.Fatal(err)
	}
	return n
}
