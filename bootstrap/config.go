package bootstrap

import (
	"github.com/kbukum/accountkit/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig (value embedding) automatically
// satisfies this interface via promoted methods.
//
// Example:
//
//	type ClientConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Demo DemoConfig `yaml:"demo" mapstructure:"demo"`
//	}
//
//	app, err := bootstrap.NewApp[*ClientConfig](&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
