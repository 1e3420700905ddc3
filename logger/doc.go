// Package logger provides structured logging for accountkit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.WithComponent("singleton")
//	log.Debug("instance constructed", logger.Fields(logger.FieldStrategy, "holder"))
package logger
