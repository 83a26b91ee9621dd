package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jacksonlee411/staffsync/modules/company"
	"github.com/jacksonlee411/staffsync/modules/company/infrastructure/persistence"
	"github.com/jacksonlee411/staffsync/pkg/composables"
	"github.com/jacksonlee411/staffsync/pkg/configuration"
	"github.com/jacksonlee411/staffsync/pkg/database"
	"github.com/jacksonlee411/staffsync/pkg/eventbus"
	"github.com/jacksonlee411/staffsync/pkg/tracing"
)

var envFiles = []string{".env", ".env.local"}

// app holds everything a subcommand needs. ctx carries the database and logger.
type app struct {
	ctx      context.Context
	conf     *configuration.Configuration
	db       *sqlx.DB
	bus      eventbus.EventBus
	services *company.Services
	shutdown tracing.ShutdownFunc
}

func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	conf, err := configuration.Load(envFiles)
	if err != nil {
		return nil, withCode(exitUsage, fmt.Errorf("load configuration: %w", err))
	}
	orphanDepartment := conf.Reconcile.OrphanDepartmentID
	if cmd.Flags().Changed("orphan-department") {
		if opts.orphanDepartment < 0 {
			conf.Unload()
			return nil, withCode(exitUsage, fmt.Errorf("invalid --orphan-department %d", opts.orphanDepartment))
		}
		orphanDepartment = opts.orphanDepartment
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := tracing.Setup(ctx, conf.OpenTelemetry)
	if err != nil {
		conf.Unload()
		return nil, fmt.Errorf("setup tracing: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := database.Open(connectCtx, conf.Database)
	if err != nil {
		_ = shutdown(ctx)
		conf.Unload()
		return nil, fmt.Errorf("db connect failed: %w", err)
	}

	logger := conf.Logger()
	ctx = composables.WithDB(ctx, db)
	ctx = composables.WithLogger(ctx, logrus.NewEntry(logger).WithField("app_env", conf.GoAppEnvironment))

	if err := persistence.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		_ = shutdown(ctx)
		conf.Unload()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	bus := eventbus.NewEventPublisher(logger)
	return &app{
		ctx:      ctx,
		conf:     conf,
		db:       db,
		bus:      bus,
		services: company.NewServices(bus, company.Options{OrphanDepartmentID: orphanDepartment}),
		shutdown: shutdown,
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.conf.Logger().WithError(err).Warn("close database")
	}
	if err := a.shutdown(context.Background()); err != nil {
		a.conf.Logger().WithError(err).Warn("shutdown tracing")
	}
	a.conf.Unload()
}
