// Package treemetrics exposes tree.Host activity as Prometheus metrics,
// grounded on the teacher's pkg/bubbly/monitoring PrometheusMetrics: a
// small struct of counters/gauges registered against a caller-supplied
// prometheus.Registerer, used by wiring it in with tree.WithMetrics.
package treemetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nodelake/machinetree/tree"
)

// Collector observes Host.Render and Host.PollWork activity.
type Collector struct {
	renders   prometheus.Counter
	unlinks   prometheus.Counter
	sprouts   prometheus.Counter
	polls     *prometheus.CounterVec
	liveNodes prometheus.Gauge
}

// NewCollector builds a Collector and registers its metrics against reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "machinetree_renders_total",
			Help: "Total number of nodes rendered across all Render calls.",
		}),
		unlinks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "machinetree_unlinked_total",
			Help: "Total number of nodes unlinked from the lake.",
		}),
		sprouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "machinetree_sprouted_total",
			Help: "Total number of nodes sprouted fresh (not reused by key+type match).",
		}),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "machinetree_poll_signals_total",
			Help: "Self-render signals observed by PollWork, partitioned by outcome.",
		}, []string{"outcome"}),
		liveNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "machinetree_live_nodes",
			Help: "Current number of live nodes in the lake.",
		}),
	}
	reg.MustRegister(c.renders, c.unlinks, c.sprouts, c.polls, c.liveNodes)
	return c
}

// ObserveRender records one Render call's report.
func (c *Collector) ObserveRender(report tree.RenderReport, liveNodes int) {
	c.renders.Add(float64(len(report.RenderedKeys)))
	c.unlinks.Add(float64(len(report.UnlinkedNodePairs)))
	c.sprouts.Add(float64(report.SproutedCount))
	c.liveNodes.Set(float64(liveNodes))
}

// ObservePoll records one PollWork call's de-duplication outcome.
func (c *Collector) ObservePoll(received, enqueued int) {
	c.polls.WithLabelValues("collapsed").Add(float64(received - enqueued))
	c.polls.WithLabelValues("enqueued").Add(float64(enqueued))
}

var _ tree.MetricsSink = (*Collector)(nil)
