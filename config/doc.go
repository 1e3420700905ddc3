// Package config loads accountkit configuration from YAML files, .env files
// and environment variables using Viper.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("account-client", &cfg, config.WithEnvPrefix("ACCOUNT"))
//
// With the ACCOUNT prefix, ACCOUNT_DEMO_STRATEGY overrides demo.strategy.
package config
