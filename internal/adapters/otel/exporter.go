package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/researchlog/internal/domain"
)

const (
	serviceName    = "rlog"
	serviceVersion = "1.0.0"
)

// Exporter exports research log metrics to an OTEL Collector.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	recordsAdded  metric.Int64Counter
	recordsSaved  metric.Int64Counter
	recordsLoaded metric.Int64Counter
	linesSkipped  metric.Int64Counter
	analyses      metric.Int64Counter
	pointsHist    metric.Int64Histogram
}

// NewExporter creates an exporter pushing to cfg.Endpoint over OTLP/gRPC.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Active() {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	e, err := newExporter(ctx, sdkmetric.NewPeriodicReader(exp))
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(e.provider)
	return e, nil
}

func newExporter(ctx context.Context, reader sdkmetric.Reader) (*Exporter, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	meter := provider.Meter(serviceName)

	e := &Exporter{provider: provider}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&e.recordsAdded, "rlog_records_added_total", "Records added to the entry store", "{record}"},
		{&e.recordsSaved, "rlog_records_saved_total", "Records written by save operations", "{record}"},
		{&e.recordsLoaded, "rlog_records_loaded_total", "Records read by load operations", "{record}"},
		{&e.linesSkipped, "rlog_lines_skipped_total", "Malformed lines skipped while loading", "{line}"},
		{&e.analyses, "rlog_analyses_total", "Per-record analyses computed", "{analysis}"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
	}

	e.pointsHist, err = meter.Int64Histogram(
		"rlog_record_data_points",
		metric.WithDescription("Number of data points per added record"),
		metric.WithUnit("{point}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating data points histogram: %w", err)
	}

	return e, nil
}

func (e *Exporter) RecordAdded(ctx context.Context, r domain.Record) {
	opt := metric.WithAttributes(attribute.String("researcher", r.Researcher))
	e.recordsAdded.Add(ctx, 1, opt)
	e.pointsHist.Record(ctx, int64(len(r.DataPoints)), opt)
}

func (e *Exporter) RecordsSaved(ctx context.Context, backend string, count int) {
	e.recordsSaved.Add(ctx, int64(count), metric.WithAttributes(attribute.String("backend", backend)))
}

func (e *Exporter) RecordsLoaded(ctx context.Context, backend string, loaded, skipped int) {
	opt := metric.WithAttributes(attribute.String("backend", backend))
	e.recordsLoaded.Add(ctx, int64(loaded), opt)
	if skipped > 0 {
		e.linesSkipped.Add(ctx, int64(skipped), opt)
	}
}

func (e *Exporter) AnalysisRun(ctx context.Context, results []domain.Analysis) {
	var ok, failed int64
	for _, a := range results {
		if a.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	if ok > 0 {
		e.analyses.Add(ctx, ok, metric.WithAttributes(attribute.String("outcome", "ok")))
	}
	if failed > 0 {
		e.analyses.Add(ctx, failed, metric.WithAttributes(attribute.String("outcome", "error")))
	}
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
