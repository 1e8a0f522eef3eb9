package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	turnsTotal       *prometheus.CounterVec
	resolutionsTotal *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	providerErrors   *prometheus.CounterVec
	memoryEvents     *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		turnsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintalk_turns_total",
				Help: "Total conversational turns by intent and outcome",
			},
			[]string{"intent", "outcome"},
		),
		resolutionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintalk_resolutions_total",
				Help: "Entity resolution attempts by pipeline stage and result",
			},
			[]string{"source", "result"},
		),
		providerLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fintalk_provider_duration_seconds",
				Help:    "Duration of provider calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintalk_provider_errors_total",
				Help: "Total provider call failures",
			},
			[]string{"provider"},
		),
		memoryEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintalk_session_memory_events_total",
				Help: "Session memory events (hit, miss, fallback, save, clear)",
			},
			[]string{"event"},
		),
	}
}

// RecordTurn records one completed turn.
func (r *Recorder) RecordTurn(intent string, outcome string) {
	r.turnsTotal.WithLabelValues(intent, outcome).Inc()
}

// RecordResolution records a resolution attempt per stage.
func (r *Recorder) RecordResolution(source string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.resolutionsTotal.WithLabelValues(source, result).Inc()
}

// RecordProviderLatency records provider call duration in seconds.
func (r *Recorder) RecordProviderLatency(provider string, seconds float64) {
	r.providerLatency.WithLabelValues(provider).Observe(seconds)
}

// RecordProviderError records a provider failure.
func (r *Recorder) RecordProviderError(provider string) {
	r.providerErrors.WithLabelValues(provider).Inc()
}

// RecordMemory records a session memory event.
func (r *Recorder) RecordMemory(event string) {
	r.memoryEvents.WithLabelValues(event).Inc()
}
