// Package logger provides structured logging for resourcekit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("httpresource")
//	log.Info("resource fetched", logger.Fields("resource", name, "url", target))
package logger
