package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/wayfinder/pkg/ui/runtime"
)

const tracerName = "github.com/odvcencio/wayfinder/pkg/ui/focus"

// Span attribute keys for navigation spans.
var (
	AttrDirection = attribute.Key("focus.direction")
	AttrOutcome   = attribute.Key("focus.outcome")
	AttrFrom      = attribute.Key("focus.from")
	AttrTo        = attribute.Key("focus.to")
)

// Tracer writes one span per navigation. It implements
// runtime.NavigationObserver.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewTracer creates a tracer exporting spans as JSON to w and installs it
// as the global tracer provider.
func NewTracer(serviceName string, w io.Writer) (*Tracer, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(provider)

	return &Tracer{
		provider: provider,
		tracer:   provider.Tracer(tracerName),
	}, nil
}

// Navigated implements runtime.NavigationObserver.
func (t *Tracer) Navigated(nav runtime.Navigation) {
	_, span := t.tracer.Start(context.Background(), "focus.navigate",
		trace.WithTimestamp(nav.Started),
		trace.WithAttributes(
			AttrDirection.String(nav.Direction.String()),
			AttrOutcome.String(nav.Outcome()),
			AttrFrom.String(runtime.Describe(nav.From)),
			AttrTo.String(runtime.Describe(nav.To)),
		),
	)
	span.End(trace.WithTimestamp(nav.Started.Add(nav.Duration)))
}

// Shutdown flushes pending spans and stops the exporter.
func (t *Tracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

var _ runtime.NavigationObserver = (*Tracer)(nil)
