package composables

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/staffsync/pkg/constants"
)

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the logger stored in ctx. The second value is false when
// the context carries none.
func UseLogger(ctx context.Context) (*logrus.Entry, bool) {
	logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	return logger, ok && logger != nil
}
