package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksonlee411/staffsync/modules/company/services"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK               = 0
	exitInternal         = 1
	exitUsage            = 2
	exitNotFound         = 3
	exitMissingReference = 4
	exitOrphaned         = 5
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// exitCode prefers an explicit cliError code and otherwise maps reconcile errors.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	switch {
	case services.IsInvalidTargetState(err):
		return exitUsage
	case services.IsNotFound(err):
		return exitNotFound
	case services.IsMissingReference(err):
		return exitMissingReference
	case services.IsOrphanedEmployees(err):
		return exitOrphaned
	default:
		return exitInternal
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return withCode(exitUsage, fmt.Errorf("accepts %d arg(s), received %d", n, len(args)))
		}
		return nil
	}
}
