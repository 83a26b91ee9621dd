package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jacksonlee411/staffsync/pkg/composables"
	"github.com/jacksonlee411/staffsync/pkg/eventbus"
	"github.com/jacksonlee411/staffsync/pkg/serrors"
)

var tracer = otel.Tracer("staffsync-company-services")

// reconcileResult is what an apply step hands back from inside the transaction.
type reconcileResult[T any] struct {
	before T
	after  T
	edges  int
}

// reconcileOp wraps one reconcile call with validation, a transaction,
// tracing, metrics, logging and the post-commit event.
type reconcileOp[T any] struct {
	kind     Kind
	id       int64
	validate func() (serrors.ValidationErrors, bool)
	apply    func(ctx context.Context) (reconcileResult[T], error)
}

func (op reconcileOp[T]) run(ctx context.Context, publisher eventbus.EventBus) (T, error) {
	var zero T
	opID := uuid.New()
	started := time.Now()

	ctx, span := tracer.Start(ctx, fmt.Sprintf("company.%s.reconcile", op.kind),
		trace.WithAttributes(
			attribute.String("company.kind", string(op.kind)),
			attribute.Int64("company.id", op.id),
			attribute.String("company.operation_id", opID.String()),
		),
	)
	defer span.End()

	fields := logrus.Fields{
		"operation_id": opID.String(),
		"kind":         string(op.kind),
		"id":           op.id,
	}

	var res reconcileResult[T]
	var err error
	if verrs, ok := op.validate(); !ok {
		err = &InvalidTargetStateError{Kind: op.kind, Fields: verrs}
	} else {
		res, err = composables.InTxResult(ctx, op.apply)
	}

	outcome := outcomeOf(err)
	elapsed := time.Since(started)
	recordReconcile(op.kind, outcome, elapsed)
	fields["duration_ms"] = elapsed.Milliseconds()
	msg := fmt.Sprintf("company.%s.reconcile.%s", op.kind, outcome)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		fields["error"] = err.Error()
		if code := ErrorCode(err); code != "" {
			fields["code"] = code
		}
		level := logrus.WarnLevel
		if outcome == outcomeFailed {
			level = logrus.ErrorLevel
		}
		logWithFields(ctx, level, msg, fields)
		return zero, err
	}

	recordEdgesWritten(op.kind, res.edges)
	changes, diffErr := diffSnapshots(res.before, res.after)
	if diffErr != nil {
		logWithFields(ctx, logrus.WarnLevel, fmt.Sprintf("company.%s.reconcile.diff_failed", op.kind), logrus.Fields{
			"operation_id": opID.String(),
			"error":        diffErr.Error(),
		})
	}
	fields["changes"] = len(changes)
	fields["edges"] = res.edges
	span.SetAttributes(attribute.Int("company.changes", len(changes)))
	logWithFields(ctx, logrus.InfoLevel, msg, fields)

	if publisher != nil {
		event := &ReconciledEvent{
			OperationID: opID,
			Kind:        op.kind,
			ID:          op.id,
			Snapshot:    res.after,
			Changes:     changes,
			OccurredAt:  time.Now().UTC(),
		}
		if pubErr := publisher.PublishE(event); pubErr != nil && !errors.Is(pubErr, eventbus.ErrNoSubscribers) {
			logWithFields(ctx, logrus.WarnLevel, fmt.Sprintf("company.%s.reconcile.publish_failed", op.kind), logrus.Fields{
				"operation_id": opID.String(),
				"error":        pubErr.Error(),
			})
		}
	}
	return res.after, nil
}
