package safego

import (
	golocalv1 "github.com/caiflower/minihttpd/pkg/golocal/v1"
	"github.com/caiflower/minihttpd/pkg/e"
)

// Go runs fn in a new goroutine that inherits the caller's trace id. A panic
// is logged with name instead of crashing the process.
func Go(name string, fn func()) {
	traceID := golocalv1.GetTraceID()
	go func() {
		if traceID != "" {
			golocalv1.PutTraceID(traceID)
		}
		defer golocalv1.Clean()
		defer e.OnError(name)

		fn()
	}()
}
