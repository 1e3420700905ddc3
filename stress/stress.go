package stress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/accountkit/account"
	"github.com/kbukum/accountkit/errors"
	"github.com/kbukum/accountkit/logger"
	"github.com/kbukum/accountkit/observability"
	"github.com/kbukum/accountkit/singleton"
)

// Options sizes a stress run. FirstAccess reads Trials and Workers; Mutate
// reads Workers and Iterations.
type Options struct {
	Trials     int `yaml:"trials" mapstructure:"trials"`
	Workers    int `yaml:"workers" mapstructure:"workers"`
	Iterations int `yaml:"iterations" mapstructure:"iterations"`
}

// Factory builds a fresh, never-accessed provider for one trial.
type Factory func() singleton.Provider[*account.Account]

// StrategyFactory returns a Factory for strategy. A positive delay makes
// every construction sleep first, which widens the window in which
// unsynchronized first accesses overlap.
func StrategyFactory(strategy singleton.Strategy, delay time.Duration, opts ...singleton.Option) (Factory, error) {
	parsed, err := singleton.ParseStrategy(string(strategy))
	if err != nil {
		return nil, err
	}
	ctor := func() *account.Account {
		if delay > 0 {
			time.Sleep(delay)
		}
		return account.New()
	}
	return func() singleton.Provider[*account.Account] {
		return singleton.MustNew(parsed, ctor, opts...)
	}, nil
}

// Report summarizes a FirstAccess run.
type Report struct {
	Trials      int
	Workers     int
	MaxDistinct int
	RacyTrials  int
	Duration    time.Duration
}

// Consistent reports whether every trial observed a single instance.
func (r Report) Consistent() bool {
	return r.MaxDistinct <= 1
}

// MutationReport summarizes a Mutate run.
type MutationReport struct {
	Expected float64
	Observed float64
	Lost     float64
}

// Runner executes stress runs and reports them to its logger and metrics.
type Runner struct {
	metrics *observability.Metrics
	log     *logger.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMetrics records lost updates on m.
func WithMetrics(m *observability.Metrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithLogger replaces the global logger.
func WithLogger(l *logger.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = l
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.WithComponent("stress")
	}
	return r
}

// FirstAccess runs a default Runner's FirstAccess.
func FirstAccess(ctx context.Context, factory Factory, opts Options) (Report, error) {
	return NewRunner().FirstAccess(ctx, factory, opts)
}

// Mutate runs a default Runner's Mutate.
func Mutate(ctx context.Context, ledger account.Ledger, opts Options, amount float64) (MutationReport, error) {
	return NewRunner().Mutate(ctx, ledger, opts, amount)
}

// FirstAccess runs opts.Trials rounds. Each round builds a provider from
// factory, releases opts.Workers goroutines at it simultaneously and counts
// the distinct instances they received. The context is checked between
// rounds; on cancellation the partial report is returned with the error.
func (r *Runner) FirstAccess(ctx context.Context, factory Factory, opts Options) (Report, error) {
	if opts.Trials < 1 {
		return Report{}, errors.InvalidInput("trials", "must be at least 1")
	}
	if opts.Workers < 1 {
		return Report{}, errors.InvalidInput("workers", "must be at least 1")
	}

	ctx, span := observability.StartSpan(ctx, "stress.first_access", trace.WithAttributes(
		attribute.Int(logger.FieldTrials, opts.Trials),
		attribute.Int(logger.FieldWorkers, opts.Workers),
	))
	defer span.End()

	start := time.Now()
	report := Report{Workers: opts.Workers}
	for trial := 0; trial < opts.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			span.RecordError(err)
			span.SetStatus(codes.Error, "canceled")
			return report, err
		}

		distinct := firstAccessRound(factory(), opts.Workers)
		report.Trials++
		if distinct > report.MaxDistinct {
			report.MaxDistinct = distinct
		}
		if distinct > 1 {
			report.RacyTrials++
		}
	}
	report.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Int("max_distinct", report.MaxDistinct),
		attribute.Int("racy_trials", report.RacyTrials),
	)
	r.log.Debug("First-access stress finished", logger.Fields(
		logger.FieldTrials, report.Trials,
		logger.FieldWorkers, report.Workers,
		"max_distinct", report.MaxDistinct,
		"racy_trials", report.RacyTrials,
		logger.FieldDuration, report.Duration.Milliseconds(),
	))
	return report, nil
}

func firstAccessRound(p singleton.Provider[*account.Account], workers int) int {
	seen := make([]*account.Account, workers)
	start := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		go func() {
			defer wg.Done()
			<-start
			seen[w] = p.Instance()
		}()
	}
	close(start)
	wg.Wait()

	distinct := make(map[*account.Account]struct{}, 1)
	for _, acc := range seen {
		distinct[acc] = struct{}{}
	}
	return len(distinct)
}

// Mutate has opts.Workers goroutines each deposit amount opts.Iterations
// times into ledger, all released through one barrier, and compares the
// final balance against the arithmetic expectation.
func (r *Runner) Mutate(ctx context.Context, ledger account.Ledger, opts Options, amount float64) (MutationReport, error) {
	if opts.Workers < 1 {
		return MutationReport{}, errors.InvalidInput("workers", "must be at least 1")
	}
	if opts.Iterations < 1 {
		return MutationReport{}, errors.InvalidInput("iterations", "must be at least 1")
	}
	if amount <= 0 {
		return MutationReport{}, errors.InvalidInput("amount", "must be positive")
	}
	if err := ctx.Err(); err != nil {
		return MutationReport{}, err
	}

	name := ledgerName(ledger)
	ctx, span := observability.StartSpan(ctx, "stress.mutate", trace.WithAttributes(
		attribute.String("ledger", name),
		attribute.Int(logger.FieldWorkers, opts.Workers),
		attribute.Int("iterations", opts.Iterations),
	))
	defer span.End()

	initial := ledger.Balance()
	expected := initial + float64(opts.Workers)*float64(opts.Iterations)*amount

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(opts.Workers)
	for range opts.Workers {
		go func() {
			defer wg.Done()
			<-start
			for range opts.Iterations {
				ledger.Deposit(amount)
			}
		}()
	}
	close(start)
	wg.Wait()

	observed := ledger.Balance()
	report := MutationReport{
		Expected: expected,
		Observed: observed,
		Lost:     expected - observed,
	}

	span.SetAttributes(attribute.Float64("lost", report.Lost))
	if r.metrics != nil {
		r.metrics.RecordLostUpdates(ctx, name, report.Lost)
	}
	r.log.Debug("Mutation stress finished", logger.Fields(
		"ledger", name,
		logger.FieldAmount, amount,
		logger.FieldBalance, observed,
		"lost", report.Lost,
	))
	return report, nil
}

func ledgerName(ledger account.Ledger) string {
	switch ledger.(type) {
	case *account.Guarded:
		return "guarded"
	case *account.Account:
		return "unguarded"
	default:
		return fmt.Sprintf("%T", ledger)
	}
}
