// Package di provides the dependency injection container that owns
// accountkit's shared instances.
//
// Lazy registrations are guarded by a singleton.Provider of the chosen
// strategy, so a key is constructed at most once per container. Eager and
// singleton registrations hold their value from the moment they are added.
//
// # Registration
//
//	c.RegisterLazy(di.Names.Account, account.New, di.WithStrategy(singleton.StrategyHolder))
//
// # Resolution
//
//	acc := di.MustResolve[*account.Account](c, di.Names.Account)
package di
