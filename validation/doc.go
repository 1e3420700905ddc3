// Package validation validates configuration structs through struct tags
// and reports failures as *errors.AppError values.
//
//	type StressConfig struct {
//	    Trials  int `mapstructure:"trials" validate:"min=1"`
//	    Workers int `mapstructure:"workers" validate:"min=2"`
//	}
//
//	if err := validation.Validate(cfg); err != nil { ... }
package validation
