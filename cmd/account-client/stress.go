package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kbukum/accountkit/account"
	"github.com/kbukum/accountkit/bootstrap"
	"github.com/kbukum/accountkit/di"
	"github.com/kbukum/accountkit/observability"
	"github.com/kbukum/accountkit/singleton"
	"github.com/kbukum/accountkit/stress"
)

// runStress races every strategy on first access, then races deposits on a
// plain and a guarded ledger, and prints both comparisons.
func runStress(ctx context.Context, app *bootstrap.App[*Config], out io.Writer) error {
	cfg := app.Cfg.Stress
	runnerOpts := []stress.RunnerOption{stress.WithLogger(app.Logger.WithComponent("stress"))}
	if metrics, ok := di.TryResolve[*observability.Metrics](app.Container, di.Names.Metrics); ok {
		runnerOpts = append(runnerOpts, stress.WithMetrics(metrics))
	}
	runner := stress.NewRunner(runnerOpts...)

	fmt.Fprintf(out, "first access: %d trials x %d goroutines\n\n", cfg.Trials, cfg.Workers)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tTHREAD-SAFE\tMAX DISTINCT\tRACY TRIALS\tDURATION")
	for _, s := range singleton.Strategies() {
		factory, err := stress.StrategyFactory(s, cfg.ConstructDelay)
		if err != nil {
			return err
		}
		report, err := runner.FirstAccess(ctx, factory, stress.Options{Trials: cfg.Trials, Workers: cfg.Workers})
		if err != nil {
			return fmt.Errorf("first access %s: %w", s, err)
		}
		fmt.Fprintf(tw, "%s\t%t\t%d\t%d\t%s\n", s, s.ThreadSafe(), report.MaxDistinct, report.RacyTrials, report.Duration)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nmutation: %d goroutines x %d deposits of %.2f\n\n", cfg.Workers, cfg.Iterations, cfg.Amount)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEDGER\tEXPECTED\tOBSERVED\tLOST")
	ledgers := []struct {
		name   string
		ledger account.Ledger
	}{
		{"unguarded", account.New()},
		{"guarded", account.NewGuarded(account.New())},
	}
	for _, l := range ledgers {
		report, err := runner.Mutate(ctx, l.ledger, stress.Options{Workers: cfg.Workers, Iterations: cfg.Iterations}, cfg.Amount)
		if err != nil {
			return fmt.Errorf("mutate %s: %w", l.name, err)
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\n", l.name, report.Expected, report.Observed, report.Lost)
	}
	return tw.Flush()
}
