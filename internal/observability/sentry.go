package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry configures the global Sentry hub. An empty dsn disables
// reporting and returns a no-op flush.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr reports err to Sentry. It is a no-op when Sentry is not initialized.
func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}
