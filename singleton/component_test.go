package singleton

import (
	"context"
	"strings"
	"testing"

	"github.com/kbukum/accountkit/account"
	"github.com/kbukum/accountkit/component"
)

func TestComponentLifecycle(t *testing.T) {
	ctx := context.Background()
	ctor, built := countingCtor()
	c := NewComponent("account", MustNew(StrategyHolder, ctor))

	var _ component.Component = c

	if c.Name() != "account" {
		t.Errorf("expected name 'account', got %s", c.Name())
	}
	if h := c.Health(ctx); h.Status != component.StatusDegraded {
		t.Errorf("expected degraded before start, got %s", h.Status)
	}
	if built.Load() != 0 {
		t.Error("holder must not construct before Start")
	}

	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if built.Load() != 1 || c.Account() == nil {
		t.Fatal("Start should resolve the instance")
	}
	h := c.Health(ctx)
	if h.Status != component.StatusHealthy {
		t.Errorf("expected healthy after start, got %s", h.Status)
	}
	if !strings.Contains(h.Message, "balance 1000.00") {
		t.Errorf("expected balance in message, got %q", h.Message)
	}

	if err := c.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if c.Account() != nil {
		t.Error("expected no account after Stop")
	}
}

func TestComponentRestartKeepsInstance(t *testing.T) {
	ctx := context.Background()
	c := NewComponent("account", MustNew(StrategyDeferred, func() *account.Account { return account.New() }))

	_ = c.Start(ctx)
	first := c.Account()
	_ = c.Stop(ctx)
	_ = c.Start(ctx)

	if c.Account() != first {
		t.Error("restarting the component must not construct a new instance")
	}
}
