package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RenderMetrics tracks the preview/export pipeline and the template catalog.
type RenderMetrics struct {
	renderDuration     *prometheus.HistogramVec
	previewCacheLookup *prometheus.CounterVec
	layoutBlocks       prometheus.Histogram
	templateOperations *prometheus.CounterVec
}

var (
	renderMetricsOnce sync.Once
	renderMetrics     *RenderMetrics
)

func Render() *RenderMetrics {
	return RenderWithConfig(Config{})
}

func RenderWithConfig(cfg Config) *RenderMetrics {
	renderMetricsOnce.Do(func() {
		renderMetrics = newRenderMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return renderMetrics
}

func ResetRenderMetricsForTest() {
	renderMetricsOnce = sync.Once{}
	renderMetrics = nil
}

func newRenderMetrics(registerer prometheus.Registerer, cfg Config) *RenderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "paperpress"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	renderDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "paperpress_render_duration_seconds",
			Help: "Time spent building layout trees and rendering preview/export output.",
			Buckets: []float64{
				0.001,
				0.005,
				0.01,
				0.05,
				0.1,
				0.5,
				1,
				5,
			},
			ConstLabels: constLabels,
		},
		[]string{"target", "result"}, // target: preview | pdf; result: success | invalid | failed
	)

	previewCacheLookup := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "paperpress_preview_cache_lookups_total",
			Help:        "Preview cache lookups by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"outcome"}, // hit | miss
	)

	layoutBlocks := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:        "paperpress_layout_blocks",
			Help:        "Number of blocks emitted per layout tree.",
			Buckets:     []float64{1, 2, 4, 6, 8, 12, 16},
			ConstLabels: constLabels,
		},
	)

	templateOperations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "paperpress_template_operations_total",
			Help:        "Template catalog operations by action and result.",
			ConstLabels: constLabels,
		},
		[]string{"action", "result"}, // action: create | update | delete | duplicate | set_default | use
	)

	registerer.MustRegister(
		renderDuration,
		previewCacheLookup,
		layoutBlocks,
		templateOperations,
	)

	return &RenderMetrics{
		renderDuration:     renderDuration,
		previewCacheLookup: previewCacheLookup,
		layoutBlocks:       layoutBlocks,
		templateOperations: templateOperations,
	}
}

func (m *RenderMetrics) ObserveRender(target, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.WithLabelValues(target, result).Observe(elapsed.Seconds())
}

func (m *RenderMetrics) IncCacheLookup(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.previewCacheLookup.WithLabelValues(outcome).Inc()
}

func (m *RenderMetrics) ObserveLayoutBlocks(count int) {
	if m == nil {
		return
	}
	m.layoutBlocks.Observe(float64(count))
}

func (m *RenderMetrics) IncTemplateOperation(action, result string) {
	if m == nil {
		return
	}
	m.templateOperations.WithLabelValues(action, result).Inc()
}
