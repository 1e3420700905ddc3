package bootstrap

import (
	"time"

	"github.com/kbukum/accountkit/logger"
)

// Option configures the App during creation. Options are not generic, so
// the same values work for any config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger replaces the logger built from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout bounds OnStop hooks and component shutdown. Values
// that are not positive keep DefaultGracefulTimeout.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = d
	}
}
