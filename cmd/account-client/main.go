// Command account-client walks through the singleton account strategies.
//
// In demo mode it obtains two handles to the shared account, deposits on one
// and withdraws on the other, and prints both balances. In stress mode it
// races goroutines at every strategy and at plain and guarded ledgers and
// prints what it observed.
//
// Configuration is read from cmd/account-client/config.yml (or -config) and
// ACCOUNT_* environment variables, e.g. ACCOUNT_MODE=stress or
// ACCOUNT_DEMO_STRATEGY=holder.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/accountkit/bootstrap"
	"github.com/kbukum/accountkit/config"
	"github.com/kbukum/accountkit/di"
	"github.com/kbukum/accountkit/logger"
	"github.com/kbukum/accountkit/observability"
	"github.com/kbukum/accountkit/version"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

// run builds the application and executes the configured mode, printing
// results to out.
func run(ctx context.Context, args []string, out io.Writer) error {
	app, err := newApp(ctx, args, out)
	if err != nil || app == nil {
		return err
	}

	task := runDemo
	if app.Cfg.Mode == modeStress {
		task = runStress
	}
	return app.RunTask(ctx, func(ctx context.Context) error {
		return task(ctx, app, out)
	})
}

// newApp parses flags, loads configuration and wires the application for
// the configured mode. It returns a nil App once -version has been printed.
func newApp(ctx context.Context, args []string, out io.Writer) (*bootstrap.App[*Config], error) {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configFile := fs.String("config", "", "path to the YAML configuration file")
	envFile := fs.String("env", "", "path to a .env file")
	mode := fs.String("mode", "", "override the configured mode (demo or stress)")
	showVersion := fs.Bool("version", false, "print the build version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *showVersion {
		fmt.Fprintf(out, "%s %s\n", serviceName, version.Get())
		return nil, nil
	}

	opts := []config.LoaderOption{config.WithEnvPrefix(envPrefix)}
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	app, err := bootstrap.NewApp(&cfg, bootstrap.WithGracefulTimeout(cfg.ShutdownTimeout))
	if err != nil {
		return nil, err
	}

	if err := setupTelemetry(ctx, app); err != nil {
		return nil, err
	}
	if cfg.Mode == modeDemo {
		if err := setupDemo(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// setupTelemetry installs OTLP providers when enabled and registers the
// metric instruments in the container either way. Without OTLP the global
// no-op meter backs the instruments.
func setupTelemetry(ctx context.Context, app *bootstrap.App[*Config]) error {
	tel := app.Cfg.Telemetry
	if tel.Enabled {
		mp, err := observability.InitMeter(ctx, tel.Meter)
		if err != nil {
			return err
		}
		tp, err := observability.InitTracer(ctx, tel.Tracer)
		if err != nil {
			return err
		}
		app.OnStop(func(ctx context.Context) error {
			if err := tp.Shutdown(ctx); err != nil {
				app.Logger.Warn("tracer shutdown failed", logger.ErrorFields("shutdown_tracer", err))
			}
			return mp.Shutdown(ctx)
		})
	}

	metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
	if err != nil {
		return err
	}
	return app.Container.RegisterSingleton(di.Names.Metrics, metrics)
}
