package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RequestIDKey carries the correlation id set by the HTTP middleware.
const RequestIDKey ctxKey = "req_id"

// Time returns a deferred logger for one named operation:
//
//	defer obs.Time(ctx, "services.AssignOrders")(&err)
//
// It logs the duration and, when *errp is non-nil at return time, the error,
// both correlated by request id.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
