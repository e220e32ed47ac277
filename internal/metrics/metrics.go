package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
// It satisfies the recorder interfaces of the executor, catalog loader and skill loader.
type Metrics struct {
	registry *prometheus.Registry

	// Tool metrics
	ToolExecutionsTotal   *prometheus.CounterVec
	ToolExecutionDuration *prometheus.HistogramVec

	// Catalog metrics
	CatalogLoadsTotal *prometheus.CounterVec
	CatalogTools      prometheus.Gauge

	// Skill metrics
	SkillTokensAdmitted *prometheus.HistogramVec
	SkillsSkippedTotal  *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		ToolExecutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tool_executions_total",
				Help: "Total number of tool executions",
			},
			[]string{"tool_name", "status"},
		),
		ToolExecutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tool_execution_duration_seconds",
				Help:    "Duration of tool executions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool_name"},
		),

		CatalogLoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_loads_total",
				Help: "Total number of catalog loads by the tier that succeeded",
			},
			[]string{"tier"},
		),
		CatalogTools: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalog_tools",
				Help: "Number of tools in the most recently loaded catalog",
			},
		),

		SkillTokensAdmitted: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skill_tokens_admitted",
				Help:    "Approximate tokens of each skill document admitted into a budget",
				Buckets: prometheus.ExponentialBuckets(64, 2, 10),
			},
			[]string{"form"},
		),
		SkillsSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skills_skipped_total",
				Help: "Total number of skill documents skipped during budgeted loading",
			},
			[]string{"reason"},
		),
	}

	m.registerMetrics()

	return m
}

// registerMetrics registers all metrics with the registry
func (m *Metrics) registerMetrics() {
	m.registry.MustRegister(m.ToolExecutionsTotal)
	m.registry.MustRegister(m.ToolExecutionDuration)

	m.registry.MustRegister(m.CatalogLoadsTotal)
	m.registry.MustRegister(m.CatalogTools)

	m.registry.MustRegister(m.SkillTokensAdmitted)
	m.registry.MustRegister(m.SkillsSkippedTotal)
}

// ObserveToolExecution records a finished tool call
func (m *Metrics) ObserveToolExecution(tool string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	m.ToolExecutionsTotal.WithLabelValues(tool, status).Inc()
	m.ToolExecutionDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// ObserveCatalogLoad records which tier produced the catalog and its size
func (m *Metrics) ObserveCatalogLoad(tier string, tools int) {
	m.CatalogLoadsTotal.WithLabelValues(tier).Inc()
	m.CatalogTools.Set(float64(tools))
}

// ObserveSkillAdmitted records a skill document admitted into a budget
func (m *Metrics) ObserveSkillAdmitted(tokens int, compressed bool) {
	form := "full"
	if compressed {
		form = "compressed"
	}
	m.SkillTokensAdmitted.WithLabelValues(form).Observe(float64(tokens))
}

// ObserveSkillSkipped records a skill document left out of a budget
func (m *Metrics) ObserveSkillSkipped(reason string) {
	m.SkillsSkippedTotal.WithLabelValues(reason).Inc()
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
