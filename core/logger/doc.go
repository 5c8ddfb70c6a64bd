// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with both of the application's
// surfaces: the Fiber HTTP API and the Discord bot.
//
// # Trace Correlation
//
// Every HTTP request and every bot command is tagged with a trace id. The
// WithTraceID helper extracts it from a Fiber context, and WithTrace attaches
// an explicit id (as generated by the bot router), so all log lines produced
// while serving one interaction can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Bot started")
//
//	// In a request handler:
//	l := logger.WithTraceID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
