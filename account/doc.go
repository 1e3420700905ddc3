// Package account holds the shared account balance handed out by the
// singleton providers.
//
// Account mutators are deliberately unsynchronized: a provider that
// constructs exactly one Account still lets two goroutines lose each
// other's updates. Wrap an Account in Guarded when the mutators must be
// serialized as well.
//
//	acc := account.New()
//	acc.Deposit(3000)
//	acc.Withdraw(5000)
//
//	safe := account.NewGuarded(acc)
//	safe.Deposit(100)
package account
