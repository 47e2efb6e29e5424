// zerolog-backed implementation of the Logger and LoggerProvider interfaces,
// plus the package-level accessors the rest of SpecGo uses. The default
// provider writes JSON to stderr at Info level; tests and the CLI replace it
// through SetLoggerProvider.

package log

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	gerrors "github.com/chemolab/specgo/pkg/errors"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger wraps an existing zerolog.Logger.
func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: zl}
}

// Debug implements Logger.Debug.
func (z *ZerologLogger) Debug(msg string, fields ...any) {
	z.emit(z.logger.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (z *ZerologLogger) Info(msg string, fields ...any) {
	z.emit(z.logger.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (z *ZerologLogger) Warn(msg string, fields ...any) {
	z.emit(z.logger.Warn(), msg, fields)
}

// Error implements Logger.Error. When the first field is an error, it is
// attached under the standard error key together with any stacktrace carried
// by cockroachdb/errors wrapping.
func (z *ZerologLogger) Error(msg string, fields ...any) {
	event := z.logger.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			event = event.Err(err)
			if st := extractStacktrace(err); st != "" {
				event = event.Str(StacktraceAttrKey, st)
			}
			fields = fields[1:]
		}
	}
	z.emit(event, msg, fields)
}

// With implements Logger.With.
func (z *ZerologLogger) With(fields ...any) Logger {
	ctx := z.logger.With().Fields(fields)
	return &ZerologLogger{logger: ctx.Logger()}
}

// Enabled implements Logger.Enabled.
func (z *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= z.logger.GetLevel()
}

func (z *ZerologLogger) emit(event *zerolog.Event, msg string, fields []any) {
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// ZerologProvider creates zerolog-backed loggers sharing one sink.
type ZerologProvider struct {
	mu    sync.Mutex
	root  zerolog.Logger
	level zerolog.Level
}

// NewZerologProvider creates a provider writing JSON log lines to w.
func NewZerologProvider(w io.Writer) *ZerologProvider {
	root := zerolog.New(w).With().Timestamp().Logger()
	return &ZerologProvider{root: root, level: zerolog.InfoLevel}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &ZerologLogger{logger: p.root.Level(p.level)}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	zl := p.root.Level(p.level).With().Str(ComponentKey, name).Logger()
	return &ZerologLogger{logger: zl}
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = toZerologLevel(level)
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewZerologProvider(os.Stderr)
)

// SetLoggerProvider replaces the package-level provider. Passing nil restores
// the default stderr provider.
func SetLoggerProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	if p == nil {
		p = NewZerologProvider(os.Stderr)
	}
	provider = p
}

// GetLogger returns the default logger from the current provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a named logger from the current provider.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// SetLevel sets the minimum level on the current provider.
func SetLevel(level Level) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	provider.SetLevel(level)
}

// RegisterWarningSink routes pkg/errors warnings to a zerolog logger writing
// to w. Warnings that implement zerolog.LogObjectMarshaler are emitted with
// their structured fields.
func RegisterWarningSink(w io.Writer) {
	zl := zerolog.New(w).With().Timestamp().Str(ComponentKey, "warnings").Logger()
	gerrors.SetZerologWarnFunc(func(warning error) {
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			zl.Warn().Object("warning", obj).Msg(warning.Error())
			return
		}
		zl.Warn().Msg(warning.Error())
	})
}
