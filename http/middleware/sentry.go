package middleware

import (
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/reply"
)

// ReportPanic recovers panics and reports them to Sentry
// in environments where reply.Environment.ReportsPanics.
//
// Elsewhere, NoopAdapter returns and panics propagate as usual.
func ReportPanic(env reply.Environment) Adapter {
	if !env.ReportsPanics() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return sh.Handle
}
