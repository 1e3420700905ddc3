package singleton

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/accountkit/account"
	"github.com/kbukum/accountkit/errors"
	"github.com/kbukum/accountkit/logger"
	"github.com/kbukum/accountkit/observability"
)

// countingCtor returns a constructor that counts its invocations.
func countingCtor() (func() *account.Account, *atomic.Int64) {
	var n atomic.Int64
	return func() *account.Account {
		n.Add(1)
		return account.New()
	}, &n
}

func TestSequentialIdentity(t *testing.T) {
	for _, s := range Strategies() {
		t.Run(string(s), func(t *testing.T) {
			ctor, built := countingCtor()
			p, err := New(s, ctor)
			if err != nil {
				t.Fatalf("New(%s) failed: %v", s, err)
			}

			first := p.Instance()
			for i := 0; i < 10; i++ {
				if got := p.Instance(); got != first {
					t.Fatalf("call %d returned a different instance", i)
				}
			}
			if built.Load() != 1 {
				t.Errorf("expected 1 construction, got %d", built.Load())
			}
		})
	}
}

func TestConstructionTiming(t *testing.T) {
	for _, s := range Strategies() {
		t.Run(string(s), func(t *testing.T) {
			ctor, built := countingCtor()
			p := MustNew(s, ctor)

			want := int64(0)
			if !s.Lazy() {
				want = 1
			}
			if built.Load() != want {
				t.Errorf("expected %d constructions before first access, got %d", want, built.Load())
			}
			p.Instance()
			if built.Load() != 1 {
				t.Errorf("expected 1 construction after first access, got %d", built.Load())
			}
		})
	}
}

func TestNewUnknownStrategy(t *testing.T) {
	_, err := New(Strategy("lazy_loaded"), account.New)
	if err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	if !errors.HasCode(err, errors.ErrCodeUnknownStrategy) {
		t.Errorf("expected UNKNOWN_STRATEGY, got %v", err)
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown strategy")
		}
	}()
	MustNew(Strategy("nope"), account.New)
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    Strategy
		wantErr bool
	}{
		{"holder", StrategyHolder, false},
		{"Double-Checked", StrategyDoubleChecked, false},
		{" deferred_synchronized ", StrategyDeferred, false},
		{"ENUMERATED", StrategyEnumerated, false},
		{"eager", StrategyEager, false},
		{"", "", true},
		{"lazy", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStrategy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStrategy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStrategyProperties(t *testing.T) {
	if StrategyUnsynchronized.ThreadSafe() {
		t.Error("unsynchronized must not report thread safety")
	}
	for _, s := range Strategies()[1:] {
		if !s.ThreadSafe() {
			t.Errorf("%s should be thread-safe", s)
		}
	}
	if len(Strategies()) != 7 {
		t.Errorf("expected 7 strategies, got %d", len(Strategies()))
	}

	list := Strategies()
	list[0] = "mutated"
	if Strategies()[0] != StrategyUnsynchronized {
		t.Error("Strategies must return a copy")
	}
}

func TestConcurrentFirstAccessSafeStrategies(t *testing.T) {
	trials, workers := 1000, 50
	if testing.Short() {
		trials = 100
	}

	for _, s := range Strategies() {
		if !s.ThreadSafe() {
			continue
		}
		t.Run(string(s), func(t *testing.T) {
			for trial := 0; trial < trials; trial++ {
				ctor, built := countingCtor()
				p := MustNew(s, ctor)

				results := make([]*account.Account, workers)
				start := make(chan struct{})
				var wg sync.WaitGroup
				for w := 0; w < workers; w++ {
					wg.Add(1)
					go func(w int) {
						defer wg.Done()
						<-start
						results[w] = p.Instance()
					}(w)
				}
				close(start)
				wg.Wait()

				for w, got := range results {
					if got != results[0] {
						t.Fatalf("trial %d: worker %d saw a different instance", trial, w)
					}
				}
				if built.Load() != 1 {
					t.Fatalf("trial %d: expected 1 construction, got %d", trial, built.Load())
				}
			}
		})
	}
}

func TestProcessWideAccessors(t *testing.T) {
	accessors := map[Strategy]func() *account.Account{
		StrategyUnsynchronized: GetUnsynchronized,
		StrategySynchronized:   GetSynchronized,
		StrategyDoubleChecked:  GetDoubleChecked,
		StrategyDeferred:       GetDeferred,
		StrategyHolder:         GetHolder,
		StrategyEnumerated:     GetEnumerated,
		StrategyEager:          GetEager,
	}

	for s, get := range accessors {
		t.Run(string(s), func(t *testing.T) {
			a, b := get(), get()
			if a == nil || a != b {
				t.Fatal("expected the same non-nil instance from repeated calls")
			}
			viaGet, err := Get(s)
			if err != nil {
				t.Fatalf("Get(%s) failed: %v", s, err)
			}
			if viaGet != a {
				t.Error("Get returned a different instance than the accessor")
			}
		})
	}

	if _, err := Get(Strategy("missing")); !errors.HasCode(err, errors.ErrCodeUnknownStrategy) {
		t.Errorf("expected UNKNOWN_STRATEGY from Get, got %v", err)
	}
}

func TestSharedHandlesSeeMutations(t *testing.T) {
	ctor, _ := countingCtor()
	p := MustNew(StrategyHolder, ctor)

	first, second := p.Instance(), p.Instance()
	first.Deposit(3000)
	second.Withdraw(5000)

	if first.Balance() != -1000 || second.Balance() != -1000 {
		t.Errorf("expected both handles at -1000, got %v and %v", first.Balance(), second.Balance())
	}
}

func sumFor(t *testing.T, reader *sdkmetric.ManualReader, name string, strategy Strategy) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("expected int64 sum for %s, got %T", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key(observability.AttrStrategy)); ok && v.AsString() == string(strategy) {
					return dp.Value
				}
			}
		}
	}
	return 0
}

func TestWithMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := observability.NewMetrics(mp.Meter(observability.InstrumentationName))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	p := MustNew(StrategyDoubleChecked, account.New, WithMetrics(metrics))
	for i := 0; i < 3; i++ {
		p.Instance()
	}

	if got := sumFor(t, reader, observability.MetricConstructions, StrategyDoubleChecked); got != 1 {
		t.Errorf("expected 1 construction, got %d", got)
	}
	if got := sumFor(t, reader, observability.MetricAccesses, StrategyDoubleChecked); got != 3 {
		t.Errorf("expected 3 accesses, got %d", got)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, &logger.Config{Level: "debug", Format: "json"}, "test")

	p := MustNew(StrategyEager, account.New, WithLogger(log))
	out := buf.String()

	if !strings.Contains(out, "instance constructed") {
		t.Errorf("expected construction log, got %q", out)
	}
	if !strings.Contains(out, p.Instance().ID().String()) {
		t.Errorf("expected instance id in log, got %q", out)
	}
	if !strings.Contains(out, `"strategy":"eager"`) {
		t.Errorf("expected strategy field in log, got %q", out)
	}
}
