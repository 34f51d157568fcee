package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

// latencyBoundaries are the histogram buckets of http/server/duration, in ms.
var latencyBoundaries = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}

var (
	methodKey = attribute.Key("http.method")
	routeKey  = attribute.Key("http.route")
	statusKey = attribute.Key("http.status_code")
)

// newPrometheusExporter installs the exporter as the global meter provider.
// Its ServeHTTP is mounted on the diag router.
func newPrometheusExporter() (*prometheus.Exporter, error) {
	config := prometheus.Config{
		DefaultHistogramBoundaries: latencyBoundaries,
	}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, err
	}

	global.SetMeterProvider(exporter.MeterProvider())

	return exporter, nil
}

type Metrics struct {
	completed metric.Int64Counter
	duration  metric.Float64ValueRecorder
}

func NewMetrics(meter metric.Meter) *Metrics {
	must := metric.Must(meter)

	return &Metrics{
		completed: must.NewInt64Counter(
			"http/server/completed_count",
			metric.WithDescription("Count of completed requests, by HTTP method, route and response status"),
		),
		duration: must.NewFloat64ValueRecorder(
			"http/server/duration",
			metric.WithDescription("Request latency in milliseconds, by HTTP method, route and response status"),
		),
	}
}

// Middleware records every request under its route pattern, so ids in the
// path do not explode the label set.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		labels := []attribute.KeyValue{
			methodKey.String(r.Method),
			routeKey.String(route),
			statusKey.String(strconv.Itoa(status)),
		}

		m.completed.Add(r.Context(), 1, labels...)
		m.duration.Record(r.Context(), float64(time.Since(start).Microseconds())/1000, labels...)
	})
}
