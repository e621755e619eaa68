package obs

import (
	"context"
	"time"
)

// Time logs the duration of an operation. Use as
//
//	defer obs.Time(ctx, "store.ListByRoute")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			Ctx(ctx).Warn().Str("op", name).Dur("dur", dur).Err(*errp).Msg("operation failed")
			return
		}
		Ctx(ctx).Debug().Str("op", name).Dur("dur", dur).Msg("operation done")
	}
}
