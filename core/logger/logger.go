package logger

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format selects the encoding (json or console).
	Format string `mapstructure:"format" default:"json"`
}

// New creates a new zap logger based on the configuration.
func New(cfg *Config) (*zap.Logger, error) {
	var config zap.Config

	if cfg.Level == "debug" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	if cfg.Format == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	} else {
		config.Encoding = "json"
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	return config.Build()
}

// TraceKey is the locals/field key carrying the per-interaction trace id.
const TraceKey = "trace_id"

// WithTraceID returns a logger with the trace_id field taken from the
// Fiber context, as set by the traceid middleware.
func WithTraceID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	tid := c.Locals(TraceKey)
	if str, ok := tid.(string); ok && str != "" {
		return l.With(zap.String(TraceKey, str))
	}
	return l
}

// WithTrace returns a logger with an explicit trace id attached. Used by
// the bot router, which has no Fiber context.
func WithTrace(l *zap.Logger, id string) *zap.Logger {
	if id == "" {
		return l
	}
	return l.With(zap.String(TraceKey, id))
}
