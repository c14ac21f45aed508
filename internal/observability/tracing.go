package observability

import (
	"context"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/config"
	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	ServiceName    = "app-recomendacao"
	ServiceVersion = "v1.0.0"
)

// Tracer mantém o provider para permitir shutdown ordenado
type Tracer struct {
	provider *sdktrace.TracerProvider
	log      *logger.Logger
}

// InitTracer inicializa o OpenTelemetry com exporter OTLP gRPC. Com tracing desabilitado
// ou falha na criação do exporter, o provider global continua no-op e o serviço segue.
func InitTracer(ctx context.Context, cfg *config.Config, log *logger.Logger) *Tracer {
	if log == nil {
		log = logger.NewNop()
	}
	t := &Tracer{log: log.With("component", "tracing")}

	// O propagador é configurado mesmo sem exporter para repassar trace headers
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.TracingEnabled {
		t.log.Info("tracing disabled")
		return t
	}

	client := otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.TracingEndpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		t.log.Error("failed to create OTLP exporter", "error", err, "endpoint", cfg.TracingEndpoint)
		return t
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(ServiceName),
			semconv.ServiceVersionKey.String(ServiceVersion),
		),
	)
	if err != nil {
		t.log.Error("failed to create resource", "error", err)
		return t
	}

	t.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithMaxExportBatchSize(512),
			sdktrace.WithBatchTimeout(time.Second*10),
			sdktrace.WithMaxQueueSize(2048),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(t.provider)

	t.log.Info("tracer initialized", "endpoint", cfg.TracingEndpoint)
	return t
}

// Enabled indica se há um provider exportando spans
func (t *Tracer) Enabled() bool {
	return t != nil && t.provider != nil
}

// Shutdown descarrega os spans pendentes
func (t *Tracer) Shutdown(ctx context.Context) {
	if !t.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err := t.provider.Shutdown(ctx); err != nil {
		t.log.Error("failed to shutdown tracer provider", "error", err)
	}
}
