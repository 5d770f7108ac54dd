package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

const (
	meterName    = "nba-tonight"
	otlpInterval = 15 * time.Second
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = meterName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	rec := NewRecorder()
	otelInst, err := instrumentFactory(provider, rec.ViewShape)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, nil, err
	}
	rec.otel = otelInst

	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(otlpInterval)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

// viewObserver reports the shape of the last built view, if any.
type viewObserver func() (ViewShape, bool)

type otelInstruments struct {
	ctx              context.Context
	requests         metric.Int64Counter
	requestLatency   metric.Float64Histogram
	providerAttempts metric.Int64Counter
	providerErrors   metric.Int64Counter
	providerLatency  metric.Float64Histogram
	builds           metric.Int64Counter
	buildLatency     metric.Float64Histogram
}

func newOtelInstruments(provider metric.MeterProvider, observe viewObserver) (*otelInstruments, error) {
	meter := provider.Meter(meterName)
	inst := &otelInstruments{ctx: context.Background()}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&inst.requests, "http_requests_total", "HTTP requests served."},
		{&inst.providerAttempts, "provider_attempts_total", "Schedule feed fetches."},
		{&inst.providerErrors, "provider_errors_total", "Schedule feed fetches that failed."},
		{&inst.builds, "view_builds_total", "View builds by outcome."},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("metrics: counter %s: %w", c.name, err)
		}
		*c.dst = counter
	}

	histograms := []struct {
		dst  *metric.Float64Histogram
		name string
		desc string
	}{
		{&inst.requestLatency, "http_request_duration_ms", "HTTP request latency."},
		{&inst.providerLatency, "provider_duration_ms", "Schedule feed fetch latency."},
		{&inst.buildLatency, "view_build_duration_ms", "End-to-end view build latency."},
	}
	for _, h := range histograms {
		hist, err := meter.Float64Histogram(h.name, metric.WithUnit("ms"), metric.WithDescription(h.desc))
		if err != nil {
			return nil, fmt.Errorf("metrics: histogram %s: %w", h.name, err)
		}
		*h.dst = hist
	}

	if observe != nil {
		if err := registerViewGauges(meter, observe); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// registerViewGauges exports the size of each list in the last built view and
// whether it was available. Nothing is reported before the first build.
func registerViewGauges(meter metric.Meter, observe viewObserver) error {
	games, err := meter.Int64ObservableGauge("view_games",
		metric.WithDescription("Games in the last built view, by section."))
	if err != nil {
		return fmt.Errorf("metrics: gauge view_games: %w", err)
	}
	available, err := meter.Int64ObservableGauge("view_available",
		metric.WithDescription("1 when the last built view carries schedule data."))
	if err != nil {
		return fmt.Errorf("metrics: gauge view_available: %w", err)
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		shape, ok := observe()
		if !ok {
			return nil
		}
		o.ObserveInt64(games, int64(shape.Today), metric.WithAttributes(attribute.String(AttrSection, "today")))
		o.ObserveInt64(games, int64(shape.Last), metric.WithAttributes(attribute.String(AttrSection, "last")))
		o.ObserveInt64(games, int64(shape.Next), metric.WithAttributes(attribute.String(AttrSection, "next")))
		var up int64
		if shape.Available {
			up = 1
		}
		o.ObserveInt64(available, up)
		return nil
	}, games, available)
	if err != nil {
		return fmt.Errorf("metrics: register view gauges: %w", err)
	}
	return nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatency.Record(o.ctx, millis(duration), attrs)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.providerAttempts.Add(o.ctx, 1, attrs)
	o.providerLatency.Record(o.ctx, millis(duration), attrs)
	if err != nil {
		o.providerErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordBuild(outcome BuildOutcome, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrOutcome, string(outcome)))
	o.builds.Add(o.ctx, 1, attrs)
	o.buildLatency.Record(o.ctx, millis(duration), attrs)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
