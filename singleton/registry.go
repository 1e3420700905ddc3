package singleton

import (
	"github.com/kbukum/accountkit/account"
	"github.com/kbukum/accountkit/errors"
)

// Process-wide providers, one account per strategy. The unsynchronized one
// is only safe to call from a single goroutine.
var (
	unsynchronizedAccount = NewUnsynchronized(newAccount)
	synchronizedAccount   = NewSynchronized(newAccount)
	doubleCheckedAccount  = NewDoubleChecked(newAccount)
	deferredAccount       = NewDeferred(newAccount)
	holderAccount         = NewHolder(newAccount)
	eagerAccount          = NewEager(newAccount)
)

func newAccount() *account.Account {
	return account.New()
}

// AccountRegistry is an enumerated type with exactly one value, Instance.
// The account it carries is built during package initialization, before
// any caller can observe it.
type AccountRegistry int

// Instance is the sole AccountRegistry value.
const Instance AccountRegistry = 0

var registryAccounts = [...]*account.Account{
	Instance: account.New(),
}

// Account returns the account owned by the registry value.
func (r AccountRegistry) Account() *account.Account {
	return registryAccounts[r]
}

func (r AccountRegistry) String() string {
	return EnumeratedToken
}

// MarshalText encodes the registry value by name.
func (r AccountRegistry) MarshalText() ([]byte, error) {
	return []byte(EnumeratedToken), nil
}

// UnmarshalText resolves a name back to the registry value. Decoding never
// constructs an account.
func (r *AccountRegistry) UnmarshalText(text []byte) error {
	if string(text) != EnumeratedToken {
		return errors.InvalidInput("account_registry", "unknown registry value "+string(text))
	}
	*r = Instance
	return nil
}

// GetUnsynchronized returns the process-wide unsynchronized account.
func GetUnsynchronized() *account.Account { return unsynchronizedAccount.Instance() }

// GetSynchronized returns the process-wide account guarded by a per-call lock.
func GetSynchronized() *account.Account { return synchronizedAccount.Instance() }

// GetDoubleChecked returns the process-wide double-checked account.
func GetDoubleChecked() *account.Account { return doubleCheckedAccount.Instance() }

// GetDeferred returns the process-wide account built through syncInit.
func GetDeferred() *account.Account { return deferredAccount.Instance() }

// GetHolder returns the process-wide account built through sync.OnceValue.
func GetHolder() *account.Account { return holderAccount.Instance() }

// GetEnumerated returns the account owned by the Instance registry value.
func GetEnumerated() *account.Account { return Instance.Account() }

// GetEager returns the process-wide account built at package initialization.
func GetEager() *account.Account { return eagerAccount.Instance() }

// Default returns the process-wide provider for strategy.
func Default(strategy Strategy) (Provider[*account.Account], error) {
	switch strategy {
	case StrategyUnsynchronized:
		return unsynchronizedAccount, nil
	case StrategySynchronized:
		return synchronizedAccount, nil
	case StrategyDoubleChecked:
		return doubleCheckedAccount, nil
	case StrategyDeferred:
		return deferredAccount, nil
	case StrategyHolder:
		return holderAccount, nil
	case StrategyEnumerated:
		return registryProvider{}, nil
	case StrategyEager:
		return eagerAccount, nil
	default:
		return nil, errors.UnknownStrategy(string(strategy), strategyNames())
	}
}

// Get returns the process-wide account for strategy.
func Get(strategy Strategy) (*account.Account, error) {
	p, err := Default(strategy)
	if err != nil {
		return nil, err
	}
	return p.Instance(), nil
}

type registryProvider struct{}

func (registryProvider) Instance() *account.Account { return Instance.Account() }
