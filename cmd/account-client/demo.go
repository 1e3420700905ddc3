package main

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/accountkit/account"
	"github.com/kbukum/accountkit/bootstrap"
	"github.com/kbukum/accountkit/di"
	"github.com/kbukum/accountkit/logger"
	"github.com/kbukum/accountkit/observability"
	"github.com/kbukum/accountkit/singleton"
)

// accountProvider is the provider type stored in the container.
type accountProvider = singleton.Provider[*account.Account]

// setupDemo builds the account provider and registers it as a component,
// so startup resolves it. The provider is published to the container once
// components are running and the shared account is logged when the app is
// ready.
func setupDemo(app *bootstrap.App[*Config]) error {
	strategy, err := singleton.ParseStrategy(app.Cfg.Demo.Strategy)
	if err != nil {
		return err
	}

	var provider accountProvider
	if app.Cfg.Demo.ProcessWide {
		provider, err = singleton.Default(strategy)
	} else {
		opts := []singleton.Option{singleton.WithLogger(app.Logger.WithComponent("singleton"))}
		if metrics, ok := di.TryResolve[*observability.Metrics](app.Container, di.Names.Metrics); ok {
			opts = append(opts, singleton.WithMetrics(metrics))
		}
		provider, err = singleton.New(strategy, func() *account.Account { return account.New() }, opts...)
	}
	if err != nil {
		return err
	}

	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
		return a.Container.RegisterSingleton(di.Names.Account, provider)
	})
	app.OnReady(func(ctx context.Context) error {
		p, err := di.Resolve[accountProvider](app.Container, di.Names.Account)
		if err != nil {
			return err
		}
		acc := p.Instance()
		app.Logger.Info("Account ready", logger.Fields(
			logger.FieldStrategy, string(strategy),
			logger.FieldInstanceID, acc.ID().String(),
			logger.FieldBalance, acc.Balance(),
		))
		return nil
	})
	return app.RegisterComponent(singleton.NewComponent(di.Names.Account, provider))
}

// runDemo obtains two handles, deposits on the first, withdraws on the
// second and prints what each handle sees.
func runDemo(ctx context.Context, app *bootstrap.App[*Config], out io.Writer) error {
	provider, err := di.Resolve[accountProvider](app.Container, di.Names.Account)
	if err != nil {
		return err
	}
	demo := app.Cfg.Demo

	first := provider.Instance()
	second := provider.Instance()

	first.Deposit(demo.Deposit)
	second.Withdraw(demo.Withdraw)

	app.Logger.Info("demo finished", logger.Fields(
		logger.FieldStrategy, demo.Strategy,
		logger.FieldInstanceID, first.ID().String(),
		logger.FieldBalance, first.Balance(),
	))

	fmt.Fprintf(out, "strategy:       %s\n", demo.Strategy)
	fmt.Fprintf(out, "deposit:        %.2f on first handle\n", demo.Deposit)
	fmt.Fprintf(out, "withdraw:       %.2f on second handle\n", demo.Withdraw)
	fmt.Fprintf(out, "first handle:   %s balance %.2f\n", first.ID(), first.Balance())
	fmt.Fprintf(out, "second handle:  %s balance %.2f\n", second.ID(), second.Balance())
	fmt.Fprintf(out, "same instance:  %t\n", first == second)
	return nil
}
