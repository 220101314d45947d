package internal

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "sigvar"

var (
	writesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "writes_total",
		Help:      "Variable writes by outcome (accepted, denied, superseded).",
	}, []string{"result"})

	hookCallsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "hook_calls_total",
		Help:      "Hook callbacks invoked.",
	})

	selectionChangesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "when_selection_changes_total",
		Help:      "Active branch changes across all when variables.",
	})

	animationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "animations_total",
		Help:      "Animation lifecycle events (started, superseded, finished, abandoned).",
	}, []string{"event"})

	contextsRealizedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "contexts_realized_total",
		Help:      "Per-context variable instances built.",
	})
)

var (
	writesAccepted   = writesTotal.WithLabelValues("accepted")
	writesDenied     = writesTotal.WithLabelValues("denied")
	writesSuperseded = writesTotal.WithLabelValues("superseded")

	animationsStarted    = animationsTotal.WithLabelValues("started")
	animationsSuperseded = animationsTotal.WithLabelValues("superseded")
	animationsFinished   = animationsTotal.WithLabelValues("finished")
	animationsAbandoned  = animationsTotal.WithLabelValues("abandoned")
)

// Collectors returns every runtime metric.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		writesTotal,
		hookCallsTotal,
		selectionChangesTotal,
		animationsTotal,
		contextsRealizedTotal,
	}
}

// RegisterMetrics registers the runtime metrics with reg. Metrics that
// are already registered there are left in place.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return errors.Wrap(err, "register sigvar metrics")
		}
	}

	return nil
}
