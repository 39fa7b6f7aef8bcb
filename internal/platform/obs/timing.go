package obs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time records the duration and outcome of an operation. Use with defer:
//
//	defer obs.Time(ctx, "directions.fetch")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			zap.L().Warn("operation failed",
				zap.String("req_id", reqID),
				zap.String("op", name),
				zap.Duration("dur", dur),
				zap.Error(*errp))
			return
		}
		zap.L().Debug("operation complete",
			zap.String("req_id", reqID),
			zap.String("op", name),
			zap.Duration("dur", dur))
	}
}
