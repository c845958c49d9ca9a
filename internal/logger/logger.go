// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses zerolog for structured logging and integrates with
// New Relic to instrument the codebase, forwarding logs,
// metrics, and traces for debugging.
package logger

import (
	"os"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/tutorlens/tutorlens/internal/config"
)

// LoggerService wraps the optional New Relic application instance.
//
// When New Relic is not configured (empty license key), app is nil and
// every consumer treats instrumentation as a no-op.
type LoggerService struct {
	app *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when the agent
// is disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.app
}

// Shutdown flushes pending agent data. Safe to call with a disabled agent.
func (ls *LoggerService) Shutdown(timeout time.Duration) {
	if ls == nil || ls.app == nil {
		return
	}
	ls.app.Shutdown(timeout)
}

// New builds the application logger and the observability service from
// config.
//
// Behavior:
//   - Log level comes from ObservabilityConfig.GetLogLevel.
//   - Format "console" pretty-prints to stderr (local dev); anything else
//     emits JSON (log aggregators).
//   - When a New Relic license key is present the agent is started and
//     wrapped in LoggerService; errors there are non-fatal because the app
//     must keep working without telemetry.
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService) {
	level, err := zerolog.ParseLevel(cfg.Observability.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Observability.Logging.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().
			Timestamp().
			Str("service", cfg.Observability.ServiceName).
			Logger()
	} else {
		logger = zerolog.New(os.Stderr).
			Level(level).
			With().
			Timestamp().
			Str("service", cfg.Observability.ServiceName).
			Str("env", cfg.Observability.Environment).
			Logger()
	}

	service := &LoggerService{}

	if key := cfg.Observability.NewRelic.LicenseKey; key != "" {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.Observability.ServiceName),
			newrelic.ConfigLicense(key),
			newrelic.ConfigDistributedTracerEnabled(cfg.Observability.NewRelic.DistributedTracingEnabled),
			newrelic.ConfigAppLogForwardingEnabled(cfg.Observability.NewRelic.AppLogForwardingEnabled),
			func(c *newrelic.Config) {
				if cfg.Observability.NewRelic.DebugLogging {
					c.Logger = newrelic.NewDebugLogger(os.Stderr)
				}
			},
		)
		if err != nil {
			logger.Error().Err(err).Msg("failed to initialize New Relic, continuing without APM")
		} else {
			service.app = app
		}
	}

	return &logger, service
}

// WithTraceContext returns a child logger carrying the New Relic trace and
// span ids, so log lines can be correlated with distributed traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}
	md := txn.GetTraceMetadata()
	builder := logger.With()
	if md.TraceID != "" {
		builder = builder.Str("trace.id", md.TraceID)
	}
	if md.SpanID != "" {
		builder = builder.Str("span.id", md.SpanID)
	}
	return builder.Logger()
}

// NewPgxLogger builds the logger used for SQL query logging via pgx
// tracelog. It tags entries so query output is distinguishable from
// application logs.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps the zerolog level onto the pgx tracelog level so
// SQL logging verbosity follows the application's verbosity.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
