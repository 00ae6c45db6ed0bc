package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15

// MonitorComponent runs the component's self test on a fixed interval and
// mirrors the result into the shared healthy flag until ctx is cancelled.
func MonitorComponent(ctx context.Context, name string, selfTest func() error, healthy *atomic.Bool) {
	ticker := time.NewTicker(time.Second * HEALTHCHECK_TIMER)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := selfTest()
			healthy.Store(err == nil)
			if err != nil {
				slog.Warn("[HealthCheck] Component is unhealthy",
					slog.String("component", name),
					slog.String("error", err.Error()))
			}
		}
	}
}
