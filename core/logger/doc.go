// Package logger provides structured logging utilities built on Go's standard slog package.
//
// New builds a logger from functional options, with presets for development
// (text, debug level) and production (JSON, info level):
//
//	import "github.com/dmitrymomot/databus/core/logger"
//
//	log := logger.New(
//		logger.WithProduction("notifier"),
//		logger.WithOutput(os.Stderr),
//	)
//
// FromConfig does the same from textual settings, which is how the registry
// builds its logger from environment configuration:
//
//	log, err := logger.FromConfig("debug", "json")
//
// # Attribute Helpers
//
// Helpers create consistently named attributes. Helpers that take errors or
// identifiers return an empty slog.Attr for nil or empty input, which slog
// drops, so they are safe to use without checks:
//
//	log.Debug("handler bound",
//		logger.Registry("orders"),
//		logger.Key(key),
//		logger.SubscriberID(id),
//		logger.Handlers(n),
//	)
//
//	log.Warn("bind rejected", logger.Key(key), logger.Error(err))
package logger
