// Package logging provides the process-wide zap logger and request-scoped helpers.
//
// Entries are JSON lines in the Cloud Logging shape: timestamp, severity,
// message and caller, plus a serviceContext naming the binary that wrote them.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

var (
	mu   sync.RWMutex
	base *zap.Logger
)

type options struct {
	service string
	version string
	writer  io.Writer
	level   zapcore.Level
	core    zapcore.Core
}

// Option customises Setup.
type Option func(*options)

// WithService tags every entry with serviceContext.service and
// serviceContext.version.
func WithService(name, version string) Option {
	return func(o *options) {
		o.service = name
		o.version = version
	}
}

// WithWriter sends encoded entries to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}

// WithLevel sets the minimum enabled level. The default is info.
func WithLevel(level zapcore.Level) Option {
	return func(o *options) { o.level = level }
}

// WithCore replaces the JSON core entirely. Writer and level are ignored.
func WithCore(core zapcore.Core) Option {
	return func(o *options) { o.core = core }
}

// Setup builds the process-wide logger and installs it. Binaries call it once
// at startup; Logger falls back to Setup with no options.
func Setup(opts ...Option) *zap.Logger {
	l := build(opts...)
	mu.Lock()
	base = l
	mu.Unlock()
	return l
}

func build(opts ...Option) *zap.Logger {
	o := options{writer: os.Stdout, level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(&o)
	}

	core := o.core
	if core == nil {
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			zapcore.Lock(zapcore.AddSync(o.writer)),
			o.level,
		)
	}

	l := zap.New(core, zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr)))
	if o.service != "" {
		l = l.With(zap.Dict("serviceContext",
			zap.String("service", o.service),
			zap.String("version", o.version),
		))
	}
	return l
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = encodeTimeMicros
	cfg.LevelKey = "severity"
	cfg.EncodeLevel = encodeSeverity
	cfg.MessageKey = "message"
	cfg.CallerKey = "caller"
	cfg.StacktraceKey = "stack_trace"
	return cfg
}

func encodeTimeMicros(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(RFC3339Micros))
}

// encodeSeverity maps zap levels to Cloud Logging severity names.
func encodeSeverity(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	severity := "DEFAULT"
	switch level {
	case zapcore.DebugLevel:
		severity = "DEBUG"
	case zapcore.InfoLevel:
		severity = "INFO"
	case zapcore.WarnLevel:
		severity = "WARNING"
	case zapcore.ErrorLevel:
		severity = "ERROR"
	case zapcore.DPanicLevel:
		severity = "CRITICAL"
	case zapcore.PanicLevel:
		severity = "ALERT"
	case zapcore.FatalLevel:
		severity = "EMERGENCY"
	}
	enc.AppendString(severity)
}

// Logger returns the process-wide logger, building a default one on first use.
func Logger() *zap.Logger {
	mu.RLock()
	l := base
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		base = build()
	}
	return base
}

// Sync flushes buffered log entries. Call during shutdown.
func Sync() error {
	return Logger().Sync()
}
