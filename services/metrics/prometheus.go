package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wiseconnect"

// Metrics holds the Prometheus metrics of the API. They are registered on their own registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter       *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	QuizSubmissions      *prometheus.CounterVec
	PostsCreated         *prometheus.CounterVec
	LessonProgressUpdate *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "code"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		QuizSubmissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quiz_submissions_total",
				Help:      "Total number of quiz submissions by resulting digital literacy level",
			},
			[]string{"level"},
		),
		PostsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "community_posts_created_total",
				Help:      "Total number of community posts created by category",
			},
			[]string{"category"},
		),
		LessonProgressUpdate: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lesson_progress_updates_total",
				Help:      "Total number of lesson progress updates",
			},
			[]string{"completed"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	m.RequestCounter.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) QuizSubmitted(level string) {
	m.QuizSubmissions.WithLabelValues(level).Inc()
}

func (m *Metrics) PostCreated(category string) {
	m.PostsCreated.WithLabelValues(category).Inc()
}

func (m *Metrics) ProgressUpdated(completed bool) {
	m.LessonProgressUpdate.WithLabelValues(strconv.FormatBool(completed)).Inc()
}
