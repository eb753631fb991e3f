package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the application.
// Following the explicit dependency injection pattern, this struct
// is passed to all components that need to record metrics.
type Metrics struct {
	// Solana RPC Metrics
	solanaRPCCallsTotal   *prometheus.CounterVec
	solanaRPCCallDuration *prometheus.HistogramVec

	// Transaction Submission Metrics
	submissionsTotal       *prometheus.CounterVec
	submissionDuration     *prometheus.HistogramVec
	confirmationPollsTotal *prometheus.CounterVec
	lamportsSubmittedTotal *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		solanaRPCCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solana_rpc_calls_total",
				Help: "Total number of Solana RPC calls by method and status",
			},
			[]string{"method", "status", "endpoint"},
		),
		solanaRPCCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "solana_rpc_call_duration_seconds",
				Help:    "Duration of Solana RPC calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"method", "endpoint"},
		),
		submissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solterm_submissions_total",
				Help: "Total number of transaction submissions by command kind and status",
			},
			[]string{"kind", "status"},
		),
		submissionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "solterm_submission_duration_seconds",
				Help:    "End-to-end duration of build/sign/submit/confirm in seconds",
				Buckets: []float64{0.5, 1.0, 2.5, 5.0, 10.0, 20.0, 40.0, 60.0},
			},
			[]string{"kind"},
		),
		confirmationPollsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solterm_confirmation_polls_total",
				Help: "Total number of signature status polls while awaiting confirmation",
			},
			[]string{"endpoint"},
		),
		lamportsSubmittedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solterm_lamports_submitted_total",
				Help: "Total lamports moved by confirmed submissions, by command kind",
			},
			[]string{"kind"},
		),
	}
}

// RecordRPCCall records a Solana RPC call with duration.
func (m *Metrics) RecordRPCCall(method, status, endpoint string, duration float64) {
	m.solanaRPCCallsTotal.WithLabelValues(method, status, endpoint).Inc()
	m.solanaRPCCallDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordSubmission records one build/sign/submit/confirm round trip.
func (m *Metrics) RecordSubmission(kind, status string, duration time.Duration) {
	m.submissionsTotal.WithLabelValues(kind, status).Inc()
	m.submissionDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordConfirmationPoll records a single status poll against the node.
func (m *Metrics) RecordConfirmationPoll(endpoint string) {
	m.confirmationPollsTotal.WithLabelValues(endpoint).Inc()
}

// RecordLamportsSubmitted records the lamports moved by a confirmed submission.
func (m *Metrics) RecordLamportsSubmitted(kind string, lamports uint64) {
	m.lamportsSubmittedTotal.WithLabelValues(kind).Add(float64(lamports))
}

// Serve exposes the default registry on addr/metrics in a background
// goroutine. Errors from the listener are delivered on the returned channel;
// callers typically just log them.
func Serve(addr string) <-chan error {
	errCh := make(chan error, 1)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		errCh <- http.ListenAndServe(addr, mux)
	}()
	return errCh
}
