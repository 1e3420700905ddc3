package singleton

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/accountkit/errors"
	"github.com/kbukum/accountkit/logger"
	"github.com/kbukum/accountkit/observability"
)

// Provider hands out the single value of type T.
type Provider[T any] interface {
	// Instance returns the value, constructing it first if the strategy is
	// lazy and nothing has been published yet.
	Instance() T
}

// Option configures providers built by New.
type Option func(*options)

type options struct {
	metrics *observability.Metrics
	logger  *logger.Logger
}

// WithMetrics records constructions and accesses on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithLogger logs every construction at debug level on l.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New builds a provider for strategy around ctor.
func New[T any](strategy Strategy, ctor func() T, opts ...Option) (Provider[T], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ctor = instrument(strategy, ctor, &o)

	var p Provider[T]
	switch strategy {
	case StrategyUnsynchronized:
		p = NewUnsynchronized(ctor)
	case StrategySynchronized:
		p = NewSynchronized(ctor)
	case StrategyDoubleChecked:
		p = NewDoubleChecked(ctor)
	case StrategyDeferred:
		p = NewDeferred(ctor)
	case StrategyHolder:
		p = NewHolder(ctor)
	case StrategyEnumerated:
		p = NewEnumerated(ctor)
	case StrategyEager:
		p = NewEager(ctor)
	default:
		return nil, errors.UnknownStrategy(string(strategy), strategyNames())
	}

	if o.metrics != nil {
		p = &countedProvider[T]{Provider: p, strategy: string(strategy), metrics: o.metrics}
	}
	return p, nil
}

// MustNew is like New but panics on an unknown strategy.
func MustNew[T any](strategy Strategy, ctor func() T, opts ...Option) Provider[T] {
	p, err := New(strategy, ctor, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// identified is satisfied by values that expose a UUID, such as *account.Account.
type identified interface {
	ID() uuid.UUID
}

func instrument[T any](strategy Strategy, ctor func() T, o *options) func() T {
	if o.metrics == nil && o.logger == nil {
		return ctor
	}
	return func() T {
		v := ctor()
		if o.metrics != nil {
			o.metrics.RecordConstruction(context.Background(), string(strategy))
		}
		if o.logger != nil {
			fields := logger.Fields(logger.FieldStrategy, string(strategy))
			if id, ok := any(v).(identified); ok {
				fields[logger.FieldInstanceID] = id.ID().String()
			}
			o.logger.Debug("instance constructed", fields)
		}
		return v
	}
}

type countedProvider[T any] struct {
	Provider[T]
	strategy string
	metrics  *observability.Metrics
}

func (c *countedProvider[T]) Instance() T {
	c.metrics.RecordAccess(context.Background(), c.strategy)
	return c.Provider.Instance()
}
