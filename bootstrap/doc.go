// Package bootstrap runs an accountkit program through a fixed lifecycle:
// configuration defaults and validation, logger setup, component startup,
// hooks, the task, and graceful shutdown.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.RegisterComponent(singleton.NewComponent("account", provider))
//	return app.RunTask(ctx, run)
package bootstrap
