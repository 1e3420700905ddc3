package account

import (
	"github.com/google/uuid"
)

// DefaultBalance is the opening balance of a freshly constructed account.
const DefaultBalance = 1000.0

// Ledger is the set of operations shared by Account and Guarded.
type Ledger interface {
	Deposit(amount float64) float64
	Withdraw(amount float64) float64
	Balance() float64
}

// Account is the process-wide shared instance. Callers hold a non-owning
// pointer; the provider that constructed it owns it.
type Account struct {
	id      uuid.UUID
	balance float64
}

// Option configures a new Account.
type Option func(*Account)

// WithBalance sets the opening balance.
func WithBalance(balance float64) Option {
	return func(a *Account) {
		a.balance = balance
	}
}

// New constructs an Account with a fresh identity.
func New(opts ...Option) *Account {
	a := &Account{
		id:      uuid.New(),
		balance: DefaultBalance,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ID returns the identity assigned at construction.
func (a *Account) ID() uuid.UUID {
	return a.id
}

// Deposit adds amount to the balance and returns the new balance.
// Not safe for concurrent use.
func (a *Account) Deposit(amount float64) float64 {
	a.balance += amount
	return a.balance
}

// Withdraw subtracts amount from the balance and returns the new balance.
// There is no overdraft check. Not safe for concurrent use.
func (a *Account) Withdraw(amount float64) float64 {
	a.balance -= amount
	return a.balance
}

// Balance returns the current balance.
func (a *Account) Balance() float64 {
	return a.balance
}
