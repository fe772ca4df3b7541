// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bidleveler_documents_total",
			Help: "Documents handled per usage operation",
		},
		[]string{"operation"},
	)

	tokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bidleveler_tokens_total",
			Help: "Estimated tokens by operation and kind (original, processed, prompt, completion)",
		},
		[]string{"operation", "kind"},
	)

	llmRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bidleveler_llm_request_duration_seconds",
			Help:    "Duration of LLM comparison requests",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bidleveler_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Usage is the metric view of one usage event.
type Usage struct {
	Operation        string
	Documents        int
	OriginalTokens   int
	ProcessedTokens  int
	PromptTokens     int
	CompletionTokens int
}

// ObserveUsage adds one usage event to the counters.
func ObserveUsage(u Usage) {
	if u.Documents > 0 {
		documentsProcessed.WithLabelValues(u.Operation).Add(float64(u.Documents))
	}
	addTokens(u.Operation, "original", u.OriginalTokens)
	addTokens(u.Operation, "processed", u.ProcessedTokens)
	addTokens(u.Operation, "prompt", u.PromptTokens)
	addTokens(u.Operation, "completion", u.CompletionTokens)
}

func addTokens(operation, kind string, n int) {
	if n > 0 {
		tokensTotal.WithLabelValues(operation, kind).Add(float64(n))
	}
}

// ObserveLLMRequest records the duration of one LLM call.
func ObserveLLMRequest(d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	llmRequestDuration.WithLabelValues(status).Observe(d.Seconds())
}

// Middleware times every request by its route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		httpRequestDuration.
			WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}
