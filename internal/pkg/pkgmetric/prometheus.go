package pkgmetric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "godna"

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Recorder records dashboard metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	exportsTotal   *prometheus.CounterVec
	exportBytes    *prometheus.HistogramVec
	exportDuration *prometheus.HistogramVec
	uploadsTotal   *prometheus.CounterVec
	chatMessages   *prometheus.CounterVec
	pipelineStep   prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry, including the Go
// runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		exportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exports_total",
				Help:      "Total number of export requests by format and outcome",
			},
			[]string{"format", "outcome"},
		),
		exportBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "export_size_bytes",
				Help:      "Size of generated export artifacts",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"format"},
		),
		exportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "export_duration_seconds",
				Help:      "Time taken to serialize an export",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		uploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Total number of sample uploads by outcome",
			},
			[]string{"outcome"},
		),
		chatMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_messages_total",
				Help:      "Total number of chat messages by sender",
			},
			[]string{"sender"},
		),
		pipelineStep: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "pipeline_current_step",
				Help:      "Current index of the pipeline stepper",
			},
		),
	}
}

// RecordExport records one export attempt. size is ignored unless outcome is OutcomeOK.
func (r *Recorder) RecordExport(format, outcome string, size int, duration time.Duration) {
	if r == nil {
		return
	}

	r.exportsTotal.WithLabelValues(format, outcome).Inc()
	if outcome == OutcomeOK {
		r.exportBytes.WithLabelValues(format).Observe(float64(size))
		r.exportDuration.WithLabelValues(format).Observe(duration.Seconds())
	}
}

// RecordUpload records an accepted or rejected upload.
func (r *Recorder) RecordUpload(outcome string) {
	if r == nil {
		return
	}
	r.uploadsTotal.WithLabelValues(outcome).Inc()
}

// RecordChatMessage records a chat message from sender.
func (r *Recorder) RecordChatMessage(sender string) {
	if r == nil {
		return
	}
	r.chatMessages.WithLabelValues(sender).Inc()
}

// SetPipelineStep publishes the stepper position.
func (r *Recorder) SetPipelineStep(step int) {
	if r == nil {
		return
	}
	r.pipelineStep.Set(float64(step))
}

// ObserveChatQueue publishes pending, read at scrape time, as the chat
// reply queue depth. Call it once per registry.
func (r *Recorder) ObserveChatQueue(pending func() int) {
	if r == nil {
		return
	}
	promauto.With(r.registry).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chat_queue_depth",
			Help:      "Chat messages waiting for a bot reply",
		},
		func() float64 { return float64(pending()) },
	)
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer returns the underlying registry for inspection.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}
