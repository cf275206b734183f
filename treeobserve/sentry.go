package treeobserve

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/nodelake/machinetree/tree"
)

// SentryReporter sends the host's non-panic failure categories to Sentry,
// grounded on the teacher's observability.SentryReporter: same Hub-based,
// WithScope-per-event shape, scaled down to machinetree's two categories.
type SentryReporter struct {
	hub *sentry.Hub
}

// SentryOption configures the underlying Sentry client at construction.
type SentryOption func(*sentry.ClientOptions)

// WithEnvironment sets the environment tag for all events this reporter sends.
func WithEnvironment(env string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Environment = env }
}

// WithDebug enables Sentry's own debug logging.
func WithDebug(debug bool) SentryOption {
	return func(o *sentry.ClientOptions) { o.Debug = debug }
}

// NewSentryReporter initializes the Sentry SDK with dsn and returns a
// reporter bound to the resulting hub. An empty dsn disables sending,
// useful in tests.
func NewSentryReporter(dsn string, opts ...SentryOption) (*SentryReporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&clientOpts)
	}
	if err := sentry.Init(clientOpts); err != nil {
		return nil, fmt.Errorf("treeobserve: init sentry client: %w", err)
	}
	return &SentryReporter{hub: sentry.CurrentHub()}, nil
}

func (r *SentryReporter) ReportAbsentNode(key tree.NodeKey) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("machinetree.failure", "absent_node")
		scope.SetExtra("node", key.Name())
		r.hub.CaptureMessage("machinetree: render requested for absent node")
	})
}

func (r *SentryReporter) ReportLockFailure(key tree.NodeKey, context string) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("machinetree.failure", "lock_failure")
		scope.SetTag("machinetree.context", context)
		scope.SetExtra("node", key.Name())
		r.hub.CaptureMessage("machinetree: NodeKey lock failure during " + context)
	})
}

// Flush waits up to timeout for pending events to be sent.
func (r *SentryReporter) Flush(timeout time.Duration) {
	r.hub.Flush(timeout)
}

var _ tree.ErrorReporter = (*SentryReporter)(nil)
