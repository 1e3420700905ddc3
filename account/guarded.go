package account

import "sync"

// Guarded serializes every Ledger operation on the wrapped Account.
type Guarded struct {
	mu      sync.Mutex
	account *Account
}

// NewGuarded wraps acc. All access to acc must go through the returned
// Guarded for the totals to be exact.
func NewGuarded(acc *Account) *Guarded {
	return &Guarded{account: acc}
}

// Account returns the wrapped instance.
func (g *Guarded) Account() *Account {
	return g.account
}

func (g *Guarded) Deposit(amount float64) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.account.Deposit(amount)
}

func (g *Guarded) Withdraw(amount float64) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.account.Withdraw(amount)
}

func (g *Guarded) Balance() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.account.Balance()
}
