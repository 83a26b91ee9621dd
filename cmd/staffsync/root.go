package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Rhymond/go-money"
	"github.com/spf13/cobra"

	"github.com/jacksonlee411/staffsync/pkg/configuration"
	"github.com/jacksonlee411/staffsync/pkg/metrics"
)

const (
	formatJSON = "json"
	formatText = "text"
)

type rootOptions struct {
	format           string
	metricsFile      string
	currency         string
	orphanDepartment int64
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "staffsync",
		Short:         "Reconcile company departments, employees and projects to a desired state",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatJSON, formatText:
			default:
				return withCode(exitUsage, fmt.Errorf("invalid --format %q (expected json|text)", opts.format))
			}
			if money.GetCurrency(opts.currency) == nil {
				return withCode(exitUsage, fmt.Errorf("unknown --currency %q", opts.currency))
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(exitUsage, err)
	})

	cmd.PersistentFlags().StringVar(&opts.format, "format", formatJSON, "Output format: json|text")
	cmd.PersistentFlags().StringVar(&opts.currency, "currency", "USD", "ISO 4217 code used for amounts in text output")
	cmd.PersistentFlags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile on exit")
	cmd.PersistentFlags().Int64Var(&opts.orphanDepartment, "orphan-department", 0, "Department receiving employees dropped from a department (overrides ORPHAN_DEPARTMENT_ID)")

	cmd.AddCommand(newReconcileCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	cmd.AddCommand(newQueryCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	return cmd
}

func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit code.
// Metrics are flushed whether or not the command succeeded.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &rootOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if path := metricsPath(opts); path != "" {
		if werr := metrics.WriteTextfile(path, nil); werr != nil {
			fmt.Fprintln(stderr, werr.Error())
		}
	}
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
	}
	return exitCode(err)
}

// metricsPath returns --metrics-file, falling back to PROMETHEUS_TEXTFILE.
func metricsPath(opts *rootOptions) string {
	if opts.metricsFile != "" {
		return opts.metricsFile
	}
	prom, err := configuration.LoadPrometheus(envFiles)
	if err != nil {
		return ""
	}
	return prom.TextfilePath
}
