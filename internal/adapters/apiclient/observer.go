package apiclient

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/suwen/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/okian/suwen/internal/adapters/apiclient"

// Telemetry is the production Observer: one client span per call, trace
// context injected into the outgoing headers, and upstream call metrics.
type Telemetry struct {
	tracer trace.Tracer
}

// NewTelemetry builds a Telemetry observer. A nil provider uses the global one.
func NewTelemetry(tp trace.TracerProvider) *Telemetry {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Telemetry{tracer: tp.Tracer(tracerName)}
}

// Begin starts the client span and returns the function that ends it.
func (t *Telemetry) Begin(ctx context.Context, name string, req *http.Request) (context.Context, EndFunc) {
	start := time.Now()
	ctx, span := t.tracer.Start(ctx, "apiclient "+req.Method+" "+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(req.Method),
			semconv.URLFull(req.URL.String()),
		),
	)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return ctx, func(resp *http.Response, err error) {
		defer span.End()
		outcome := metrics.OutcomeOK
		switch {
		case err != nil:
			outcome = metrics.OutcomeTransportError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case resp.StatusCode >= http.StatusBadRequest:
			outcome = metrics.OutcomeEnvelopeError
			span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode))
			span.SetStatus(codes.Error, "status "+strconv.Itoa(resp.StatusCode))
		default:
			span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode))
		}
		metrics.RecordUpstreamRequest(name, req.Method, outcome, float64(time.Since(start).Milliseconds()))
	}
}
