package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/staffsync/pkg/composables"
)

const (
	outcomeSucceeded        = "succeeded"
	outcomeNotFound         = "not_found"
	outcomeMissingReference = "missing_reference"
	outcomeInvalid          = "invalid"
	outcomeOrphaned         = "orphaned"
	outcomeFailed           = "failed"
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSucceeded
	case IsNotFound(err):
		return outcomeNotFound
	case IsMissingReference(err):
		return outcomeMissingReference
	case IsInvalidTargetState(err):
		return outcomeInvalid
	case IsOrphanedEmployees(err):
		return outcomeOrphaned
	default:
		return outcomeFailed
	}
}

func logWithFields(ctx context.Context, level logrus.Level, msg string, fields logrus.Fields) {
	logger, ok := composables.UseLogger(ctx)
	if !ok {
		return
	}
	logger.WithFields(fields).Log(level, msg)
}
