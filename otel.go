package todoapi

import (
	"context"
	"time"

	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	exportInterval = 15 * time.Second
	exportTimeout  = exportInterval * 2
)

// initTelemetry sets up the tracer and meter. Without a collector the
// global no-op providers are used.
func (e *envState) initTelemetry(ctx context.Context) error {
	conf := e.settings.Tracer
	if !conf.Enabled {
		e.tracer = otel.GetTracerProvider().Tracer(PackageName)
		e.meter = otel.GetMeterProvider().Meter(PackageName)
		return nil
	}

	transport := grpc.WithTransportCredentials(credentials.NewTLS(nil))
	if conf.Insecure {
		transport = grpc.WithTransportCredentials(insecure.NewCredentials())
	}
	conn, err := grpc.NewClient(conf.CollectorEndpoint, transport)
	if err != nil {
		return errors.Wrapf(err, "opening gRPC connection to '%s'", conf.CollectorEndpoint)
	}

	traceExporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(otlptracegrpc.WithGRPCConn(conn)))
	if err != nil {
		grip.Warning(errors.Wrap(conn.Close(), "closing gRPC connection"))
		return errors.Wrap(err, "initializing otel trace exporter")
	}
	metricsExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		grip.Warning(errors.Wrap(traceExporter.Shutdown(ctx), "shutting down trace exporter"))
		grip.Warning(errors.Wrap(conn.Close(), "closing gRPC connection"))
		return errors.Wrap(err, "initializing otel metrics exporter")
	}

	r := serviceResource()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(r),
	)
	tp.RegisterSpanProcessor(utility.NewAttributeSpanProcessor())
	mp := sdk.NewMeterProvider(
		sdk.WithResource(r),
		sdk.WithReader(sdk.NewPeriodicReader(metricsExporter, sdk.WithInterval(exportInterval), sdk.WithTimeout(exportTimeout))),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		grip.Error(errors.Wrap(err, "otel error"))
	}))

	e.tracer = tp.Tracer(PackageName)
	e.meter = mp.Meter(PackageName)

	e.RegisterCloser("telemetry", func(ctx context.Context) error {
		catcher := grip.NewBasicCatcher()
		catcher.Wrap(tp.Shutdown(ctx), "trace provider shutdown")
		catcher.Wrap(mp.Shutdown(ctx), "meter provider shutdown")
		catcher.Wrap(traceExporter.Shutdown(ctx), "trace exporter shutdown")
		catcher.Wrap(conn.Close(), "closing gRPC connection")

		return catcher.Resolve()
	})

	return nil
}

func serviceResource() *resource.Resource {
	return resource.NewSchemaless(
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(BuildRevision),
	)
}
