package tree

import "strings"

// ErrorReporter receives the non-panic failure categories the host can
// observe: an absent node looked up during a render pass, and a NodeKey
// lock failure during reconciliation or signal installation. A panicking
// step function is never routed through this — it is never recovered, and
// propagates straight out of Host.Render, per spec §7.4. Nil means no
// reporter is configured; absent nodes are still recorded in
// RenderReport.UnrenderedKeys, but lock failures are not recorded anywhere.
type ErrorReporter interface {
	ReportAbsentNode(key NodeKey)
	ReportLockFailure(key NodeKey, context string)
}

// MetricsSink observes host activity for external metrics collection.
// ObservePoll receives the number of signals drained and the number of
// distinct keys enqueued after duplicates were collapsed.
type MetricsSink interface {
	ObserveRender(report RenderReport, liveNodes int)
	ObservePoll(received, enqueued int)
}

// RenderReport is the observable outcome of a single Host.Render call.
type RenderReport struct {
	RenderedKeys      []NodeKey
	UnrenderedKeys    []NodeKey
	UnlinkedNodePairs []UnlinkedPair
	SproutedCount     int
}

// String renders the report as each section's keys, one best-effort name
// per line.
func (r RenderReport) String() string {
	var b strings.Builder
	b.WriteString("RenderReport:\n- RenderedKeys:")
	for _, k := range r.RenderedKeys {
		b.WriteString("\n  - " + k.Name())
	}
	b.WriteString("\n- UnlinkedKeys:")
	for _, p := range r.UnlinkedNodePairs {
		b.WriteString("\n  - " + p.Key.Name())
	}
	b.WriteString("\n- UnrenderedKeys:")
	for _, k := range r.UnrenderedKeys {
		b.WriteString("\n  - " + k.Name())
	}
	return b.String()
}

// HostOption configures a Host at construction time.
type HostOption func(*Host)

// WithMetrics registers a MetricsSink that observes every Render and
// PollWork call.
func WithMetrics(m MetricsSink) HostOption {
	return func(h *Host) { h.metrics = m }
}

// WithErrorReporter configures the reporter used for non-panic failure
// categories. See ErrorReporter for what it does and doesn't see.
func WithErrorReporter(r ErrorReporter) HostOption {
	return func(h *Host) { h.reporter = r }
}

// WithSignalQueueCapacity bounds the external self-render signal queue to
// capacity pending entries; once full, SelfRenderSignal.Rerender returns
// ErrSignalQueueFull until the next PollWork drains it. capacity <= 0
// leaves the queue unbounded, the default.
func WithSignalQueueCapacity(capacity int) HostOption {
	return func(h *Host) { h.signals.capacity = capacity }
}

// Host owns a Lake, a FIFO of pending render work, and the external
// self-render signal queue.
type Host struct {
	lake     *Lake
	queue    []NodeKey
	signals  *signalQueue
	metrics  MetricsSink
	reporter ErrorReporter
	root     NodeKey
}

// MakeRoot sprouts the root node from seed, installs its self-render
// signal, and enqueues its first render.
func MakeRoot(seed Seed, opts ...HostOption) *Host {
	h := &Host{lake: newLake(), signals: &signalQueue{}}
	for _, opt := range opts {
		opt(h)
	}
	key, _ := h.lake.sproutAndLink(seed)
	h.installSignal(key)
	h.root = key
	h.queue = append(h.queue, key)
	return h
}

// Root returns the host's root NodeKey.
func (h *Host) Root() NodeKey { return h.root }

// Len reports the lake's current live node count.
func (h *Host) Len() int { return h.lake.Len() }

// Close marks the self-render signal queue closed; calls to
// SelfRenderSignal.Rerender made after this return ErrSignalClosed.
func (h *Host) Close() { h.signals.close() }

// Render pops one unit of queued work and processes a complete downward
// render pass from it. It returns an empty report if no work is queued.
func (h *Host) Render() RenderReport {
	if len(h.queue) == 0 {
		return RenderReport{}
	}
	key := h.queue[0]
	h.queue = h.queue[1:]
	report := h.renderNode(key)
	if h.metrics != nil {
		h.metrics.ObserveRender(report, h.lake.Len())
	}
	return report
}

// PollWork drains the external self-render signal queue and appends the
// pending keys as queued render work, serialized in receive order with
// duplicate NodeKeys collapsed to their first occurrence.
func (h *Host) PollWork() {
	keys := h.signals.drain()
	seen := make(map[NodeKey]struct{}, len(keys))
	enqueued := 0
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		h.queue = append(h.queue, k)
		enqueued++
	}
	if h.metrics != nil && len(keys) > 0 {
		h.metrics.ObservePoll(len(keys), enqueued)
	}
}

// renderNode drives the local/global work-queue loop for one render pass
// starting at start: every node rendered this pass, including ones newly
// sprouted as children, renders within the same call; nodes that requested
// their own re-render go to the host's work queue for a later call.
func (h *Host) renderNode(start NodeKey) RenderReport {
	var report RenderReport
	nextLocal := []NodeKey{start}
	var nextGlobal []NodeKey

	for len(nextLocal) > 0 {
		nowLocal := nextLocal
		nextLocal = nil

		for _, key := range nowLocal {
			data, ok := h.lake.Get(key)
			if !ok {
				report.UnrenderedKeys = append(report.UnrenderedKeys, key)
				if h.reporter != nil {
					h.reporter.ReportAbsentNode(key)
				}
				continue
			}

			outcome := h.renderOne(key, data)
			report.UnlinkedNodePairs = append(report.UnlinkedNodePairs, outcome.unlinked...)
			report.SproutedCount += outcome.sprouted
			if outcome.rerender {
				nextGlobal = append(nextGlobal, key)
			}
			nextLocal = append(nextLocal, outcome.newNodes...)
			report.RenderedKeys = append(report.RenderedKeys, key)
		}
	}

	h.queue = append(h.queue, nextGlobal...)
	return report
}
