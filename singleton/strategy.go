package singleton

import (
	"strings"

	"github.com/kbukum/accountkit/errors"
)

// Strategy names an initialization policy.
type Strategy string

const (
	StrategyUnsynchronized Strategy = "unsynchronized"
	StrategySynchronized   Strategy = "synchronized"
	StrategyDoubleChecked  Strategy = "double_checked"
	StrategyDeferred       Strategy = "deferred_synchronized"
	StrategyHolder         Strategy = "holder"
	StrategyEnumerated     Strategy = "enumerated"
	StrategyEager          Strategy = "eager"
)

var strategies = []Strategy{
	StrategyUnsynchronized,
	StrategySynchronized,
	StrategyDoubleChecked,
	StrategyDeferred,
	StrategyHolder,
	StrategyEnumerated,
	StrategyEager,
}

// Strategies returns every known strategy in presentation order.
func Strategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies)
	return out
}

// ParseStrategy resolves a strategy name. Matching ignores case and accepts
// dashes in place of underscores.
func ParseStrategy(name string) (Strategy, error) {
	normalized := Strategy(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	for _, s := range strategies {
		if s == normalized {
			return s, nil
		}
	}
	return "", errors.UnknownStrategy(name, strategyNames())
}

// ThreadSafe reports whether the strategy guarantees a single construction
// under concurrent first access.
func (s Strategy) ThreadSafe() bool {
	return s != StrategyUnsynchronized
}

// Lazy reports whether construction waits for the first Instance call.
func (s Strategy) Lazy() bool {
	return s != StrategyEager && s != StrategyEnumerated
}

func (s Strategy) String() string {
	return string(s)
}

func strategyNames() []string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = string(s)
	}
	return names
}
