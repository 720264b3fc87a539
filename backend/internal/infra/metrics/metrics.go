package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registerOnce    sync.Once
	contentViews    *prometheus.CounterVec
	leadSubmissions *prometheus.CounterVec
	chatPushes      *prometheus.CounterVec
)

const namespaceMetrics = "packsite"

// MustRegister initializes the Prometheus collectors. Call once during
// startup; subsequent calls are no-ops.
func MustRegister() {
	registerOnce.Do(func() {
		contentViews = registerCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespaceMetrics,
					Subsystem: "content",
					Name:      "views_total",
					Help:      "Successful public content reads, by entity kind.",
				},
				[]string{"entity"},
			),
		)
		leadSubmissions = registerCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespaceMetrics,
					Subsystem: "leads",
					Name:      "submissions_total",
					Help:      "Public lead-intake submissions, by form kind and result.",
				},
				[]string{"kind", "result"},
			),
		)
		chatPushes = registerCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespaceMetrics,
					Subsystem: "notify",
					Name:      "chat_push_total",
					Help:      "Outbound chat-webhook push attempts, by result.",
				},
				[]string{"result"},
			),
		)

		registerRuntimeCollectors()
	})
}

// ObserveContentView records one successful public read of entity
// ("blog", "article", ...).
func ObserveContentView(entity string) {
	if contentViews == nil {
		return
	}
	contentViews.WithLabelValues(entity).Inc()
}

// ObserveLeadSubmission records a lead-intake attempt. kind is "contact"
// or "agent"; result is "ok" or "error".
func ObserveLeadSubmission(kind, result string) {
	if leadSubmissions == nil {
		return
	}
	leadSubmissions.WithLabelValues(kind, result).Inc()
}

// ObserveChatPush records a chat-webhook push attempt outcome.
func ObserveChatPush(result string) {
	if chatPushes == nil {
		return
	}
	chatPushes.WithLabelValues(result).Inc()
}

// registerCounterVec tolerates duplicate registration so MustRegister
// stays safe under test re-init.
func registerCounterVec(vec *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return vec
}

func registerRuntimeCollectors() {
	for _, collector := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := prometheus.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			panic(err)
		}
	}
}
