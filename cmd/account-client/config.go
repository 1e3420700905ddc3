package main

import (
	"fmt"
	"time"

	"github.com/kbukum/accountkit/config"
	"github.com/kbukum/accountkit/observability"
	"github.com/kbukum/accountkit/singleton"
	"github.com/kbukum/accountkit/validation"
)

const (
	serviceName = "account-client"
	envPrefix   = "ACCOUNT"

	modeDemo   = "demo"
	modeStress = "stress"

	defaultShutdownTimeout = 5 * time.Second
	// A construction this slow lets concurrent first accesses overlap, so the
	// unsynchronized strategy's double construction shows up in the tables.
	defaultConstructDelay = time.Millisecond
)

// Config is the account-client configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Mode            string        `yaml:"mode" mapstructure:"mode" validate:"oneof=demo stress"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" validate:"gte=0"`

	Demo      DemoConfig      `yaml:"demo" mapstructure:"demo"`
	Stress    StressConfig    `yaml:"stress" mapstructure:"stress"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// DemoConfig drives the two-handle walkthrough.
type DemoConfig struct {
	Strategy string  `yaml:"strategy" mapstructure:"strategy" validate:"required"`
	Deposit  float64 `yaml:"deposit" mapstructure:"deposit" validate:"gt=0"`
	Withdraw float64 `yaml:"withdraw" mapstructure:"withdraw" validate:"gt=0"`
	// ProcessWide uses the package-level provider instead of a fresh one
	// owned by the container.
	ProcessWide bool `yaml:"process_wide" mapstructure:"process_wide"`
}

// StressConfig sizes the stress comparison.
type StressConfig struct {
	Trials     int     `yaml:"trials" mapstructure:"trials" validate:"gte=1"`
	Workers    int     `yaml:"workers" mapstructure:"workers" validate:"gte=1"`
	Iterations int     `yaml:"iterations" mapstructure:"iterations" validate:"gte=1"`
	Amount     float64 `yaml:"amount" mapstructure:"amount" validate:"gt=0"`
	// ConstructDelay is slept in every construction. Zero selects the default.
	ConstructDelay time.Duration `yaml:"construct_delay" mapstructure:"construct_delay" validate:"gte=0"`
}

// TelemetryConfig enables OTLP export of metrics and traces.
type TelemetryConfig struct {
	Enabled bool                       `yaml:"enabled" mapstructure:"enabled"`
	Meter   observability.MeterConfig  `yaml:"meter" mapstructure:"meter"`
	Tracer  observability.TracerConfig `yaml:"tracer" mapstructure:"tracer"`
}

// ApplyDefaults fills unset fields with the values of the original walkthrough.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()

	if c.Mode == "" {
		c.Mode = modeDemo
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Demo.Strategy == "" {
		c.Demo.Strategy = string(singleton.StrategyDoubleChecked)
	}
	if c.Demo.Deposit == 0 {
		c.Demo.Deposit = 3000
	}
	if c.Demo.Withdraw == 0 {
		c.Demo.Withdraw = 5000
	}
	if c.Stress.Trials == 0 {
		c.Stress.Trials = 1000
	}
	if c.Stress.Workers == 0 {
		c.Stress.Workers = 50
	}
	if c.Stress.Iterations == 0 {
		c.Stress.Iterations = 10000
	}
	if c.Stress.Amount == 0 {
		c.Stress.Amount = 100
	}
	if c.Stress.ConstructDelay == 0 {
		c.Stress.ConstructDelay = defaultConstructDelay
	}

	meter := observability.DefaultMeterConfig(c.Name)
	if c.Telemetry.Meter.Endpoint == "" {
		c.Telemetry.Meter = meter
	}
	tracer := observability.DefaultTracerConfig(c.Name)
	if c.Telemetry.Tracer.Endpoint == "" {
		c.Telemetry.Tracer = tracer
	}
	c.Telemetry.Meter.ServiceVersion = c.Version
	c.Telemetry.Meter.Environment = c.Environment
	c.Telemetry.Tracer.ServiceVersion = c.Version
	c.Telemetry.Tracer.Environment = c.Environment
}

// Validate checks the service section, struct tags and the strategy name.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	if _, err := singleton.ParseStrategy(c.Demo.Strategy); err != nil {
		return fmt.Errorf("demo.strategy: %w", err)
	}
	return nil
}
