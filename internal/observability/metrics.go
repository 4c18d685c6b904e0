package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce             sync.Once
	webhookRequestsTotal     *prometheus.CounterVec
	webhookLatencySeconds    *prometheus.HistogramVec
	submissionsProcessed     *prometheus.CounterVec
	quizSubmissionsGraded    *prometheus.CounterVec
	pipelineStageFailuresVec *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the grading
// pipeline.
func RegisterMetrics() {
	registerOnce.Do(func() {
		webhookRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "Total number of webhook deliveries received.",
		}, []string{"method", "route", "status"})

		webhookLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "webhook_latency_seconds",
			Help:    "Latency distribution for webhook and admin requests.",
			Buckets: []float64{0.05, 0.1, 0.5, 1.0, 5.0, 15.0, 60.0, 300.0},
		}, []string{"method", "route"})

		submissionsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "submissions_processed_total",
			Help: "Submissions that reached a terminal state, by status.",
		}, []string{"status"})

		quizSubmissionsGraded = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quiz_submissions_graded_total",
			Help: "Quiz submissions graded, by outcome.",
		}, []string{"status"})

		pipelineStageFailuresVec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_stage_failures_total",
			Help: "Pipeline failures by stage.",
		}, []string{"stage"})

		prometheus.MustRegister(webhookRequestsTotal, webhookLatencySeconds, submissionsProcessed, quizSubmissionsGraded, pipelineStageFailuresVec)
	})
}

// WebhookRequests exposes the counter for webhook deliveries.
func WebhookRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return webhookRequestsTotal
}

// WebhookLatency exposes the latency histogram for pipeline-facing requests.
func WebhookLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return webhookLatencySeconds
}

// SubmissionsProcessed exposes the counter for terminal submissions.
func SubmissionsProcessed() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionsProcessed
}

// QuizSubmissionsGraded exposes the counter for graded quiz submissions.
func QuizSubmissionsGraded() *prometheus.CounterVec {
	RegisterMetrics()
	return quizSubmissionsGraded
}

// PipelineStageFailures exposes the counter for stage-level failures.
func PipelineStageFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return pipelineStageFailuresVec
}
