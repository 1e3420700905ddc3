package singleton

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kbukum/accountkit/account"
	"github.com/kbukum/accountkit/component"
)

// Component exposes an account provider to a component.Registry. Start
// resolves the instance, so lazy strategies construct during startup.
type Component struct {
	name     string
	provider Provider[*account.Account]
	current  atomic.Pointer[account.Account]
}

// NewComponent wraps provider under name.
func NewComponent(name string, provider Provider[*account.Account]) *Component {
	return &Component{name: name, provider: provider}
}

func (c *Component) Name() string { return c.name }

func (c *Component) Start(ctx context.Context) error {
	c.current.Store(c.provider.Instance())
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	c.current.Store(nil)
	return nil
}

// Health reports healthy once Start has resolved an instance and degraded
// before that.
func (c *Component) Health(ctx context.Context) component.Health {
	acc := c.current.Load()
	if acc == nil {
		return component.Health{Name: c.name, Status: component.StatusDegraded, Message: "not started"}
	}
	return component.Health{
		Name:    c.name,
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("instance %s balance %.2f", acc.ID(), acc.Balance()),
	}
}

// Account returns the instance resolved at Start, or nil before Start.
func (c *Component) Account() *account.Account {
	return c.current.Load()
}
