// Package telemetry records pipeline metrics and LLM cost tracking.
package telemetry

import (
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mediagent/config"
)

// Telemetry exposes prometheus metrics for pipeline runs plus a simple
// cumulative cost tracker. A nil *Telemetry is a no-op everywhere, so
// components do not need to guard their call sites.
type Telemetry struct {
	config config.TelemetryConfig
	logger *log.Logger

	runsTotal     *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	toolCalls     *prometheus.CounterVec
	llmTokens     *prometheus.CounterVec

	mu          sync.Mutex
	totalCost   float64
	totalTokens int64
}

// New registers the metric vectors on the given registerer. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(cfg config.TelemetryConfig, reg prometheus.Registerer) *Telemetry {
	if !cfg.Enabled {
		return nil
	}
	t := &Telemetry{
		config: cfg,
		logger: log.New(log.Writer(), "[TELEMETRY] ", log.LstdFlags),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mediagent_runs_total",
			Help: "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mediagent_stage_duration_seconds",
			Help:    "Duration of each pipeline stage.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mediagent_tool_calls_total",
			Help: "Collaborator tool calls by platform and outcome.",
		}, []string{"platform", "outcome"}),
		llmTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mediagent_llm_tokens_total",
			Help: "LLM tokens consumed by model and direction.",
		}, []string{"model", "direction"}),
	}
	reg.MustRegister(t.runsTotal, t.stageDuration, t.toolCalls, t.llmTokens)
	return t
}

// RecordRun counts one finished pipeline run.
func (t *Telemetry) RecordRun(outcome string, d time.Duration) {
	if t == nil {
		return
	}
	t.runsTotal.WithLabelValues(outcome).Inc()
}

// RecordStage observes one stage duration.
func (t *Telemetry) RecordStage(stage string, d time.Duration) {
	if t == nil {
		return
	}
	t.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordToolCall counts one collaborator call. Outcome is one of
// success, error, skipped.
func (t *Telemetry) RecordToolCall(platform, outcome string) {
	if t == nil {
		return
	}
	t.toolCalls.WithLabelValues(platform, outcome).Inc()
}

// RecordLLM accumulates token usage and cost for one oracle consultation.
func (t *Telemetry) RecordLLM(model string, inputTokens, outputTokens int64, cost float64) {
	if t == nil {
		return
	}
	t.llmTokens.WithLabelValues(model, "input").Add(float64(inputTokens))
	t.llmTokens.WithLabelValues(model, "output").Add(float64(outputTokens))
	if t.config.CostTracking {
		t.mu.Lock()
		t.totalCost += cost
		t.totalTokens += inputTokens + outputTokens
		t.mu.Unlock()
	}
}

// TotalCost returns the cumulative tracked LLM spend.
func (t *Telemetry) TotalCost() float64 {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalCost
}

// TotalTokens returns the cumulative tracked token count.
func (t *Telemetry) TotalTokens() int64 {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalTokens
}
