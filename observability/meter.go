package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/accountkit/logger"
)

// Metric names.
const (
	MetricConstructions = "singleton.constructions"
	MetricAccesses      = "singleton.accesses"
	MetricLostUpdates   = "account.lost_updates"
)

// AttrStrategy is the attribute key carrying the strategy name.
const AttrStrategy = "strategy"

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
	Environment    string `mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string        `mapstructure:"endpoint"`
	Insecure bool          `mapstructure:"insecure"`
	Interval time.Duration `mapstructure:"interval"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes an OTLP-exporting meter provider and installs it
// as the global provider. Shut it down on exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(newResource(config.ServiceName, config.ServiceVersion, config.Environment)),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by providers and the stress harness.
type Metrics struct {
	constructions metric.Int64Counter
	accesses      metric.Int64Counter
	lostUpdates   metric.Float64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	constructions, err := meter.Int64Counter(MetricConstructions,
		metric.WithDescription("Instances constructed by a singleton provider"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricConstructions, err)
	}

	accesses, err := meter.Int64Counter(MetricAccesses,
		metric.WithDescription("Instance lookups served by a singleton provider"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricAccesses, err)
	}

	lostUpdates, err := meter.Float64Counter(MetricLostUpdates,
		metric.WithDescription("Balance lost to unsynchronized concurrent mutation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricLostUpdates, err)
	}

	return &Metrics{
		constructions: constructions,
		accesses:      accesses,
		lostUpdates:   lostUpdates,
	}, nil
}

// RecordConstruction counts one constructed instance for strategy.
func (m *Metrics) RecordConstruction(ctx context.Context, strategy string) {
	m.constructions.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStrategy, strategy)))
}

// RecordAccess counts one Instance call for strategy.
func (m *Metrics) RecordAccess(ctx context.Context, strategy string) {
	m.accesses.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStrategy, strategy)))
}

// RecordLostUpdates adds the difference between expected and observed balance.
func (m *Metrics) RecordLostUpdates(ctx context.Context, ledger string, lost float64) {
	if lost <= 0 {
		return
	}
	m.lostUpdates.Add(ctx, lost, metric.WithAttributes(attribute.String("ledger", ledger)))
}
