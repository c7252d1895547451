package searcher

import (
	"time"
)

type SearchMetrics struct {
	StartTime      time.Time
	Duration       time.Duration
	ResumedAfter   Category
	RulesEvaluated int
	Category       Category
}

type MetricsCollector interface {
	Start(last Category)
	AddRule()
	Complete(chosen Category) SearchMetrics
}

// metricsCollector is used by a single Suggest call.
type metricsCollector struct {
	startTime time.Time
	last      Category
	rules     int
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(last Category) {
	m.startTime = time.Now()
	m.last = last
}

func (m *metricsCollector) AddRule() {
	m.rules++
}

func (m *metricsCollector) Complete(chosen Category) SearchMetrics {
	return SearchMetrics{
		StartTime:      m.startTime,
		Duration:       time.Since(m.startTime),
		ResumedAfter:   m.last,
		RulesEvaluated: m.rules,
		Category:       chosen,
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return noMetricsCollector{}
}

func (noMetricsCollector) Start(Category)                  {}
func (noMetricsCollector) AddRule()                        {}
func (noMetricsCollector) Complete(Category) SearchMetrics { return SearchMetrics{} }
