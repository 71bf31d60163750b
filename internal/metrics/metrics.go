package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	Requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xapi_requests_total",
		Help: "Total X API requests by endpoint and status code (0 for transport failures)",
	}, []string{"endpoint", "code"})
	RateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xapi_rate_limited_total",
		Help: "Total X API responses with status 429",
	}, []string{"endpoint"})
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xapi_request_duration_seconds",
		Help:    "X API request duration seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xapi_command_runs_total",
		Help: "Total CLI command runs",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xapi_command_errors_total",
		Help: "Total CLI command errors",
	}, []string{"command"})
)

func init() {
	prometheus.MustRegister(Requests, RateLimited, RequestDuration, CommandRuns, CommandErrors)
}

// ObserveRequest records one HTTP exchange.
func ObserveRequest(endpoint string, code int, d time.Duration) {
	Requests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	RequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func IncRateLimited(endpoint string) { RateLimited.WithLabelValues(endpoint).Inc() }

func IncCommandRun(cmd string)   { CommandRuns.WithLabelValues(cmd).Inc() }
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }

// WriteTextfile dumps the default registry in text format for the node
// exporter textfile collector. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
