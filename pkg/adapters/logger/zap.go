package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/user/offergen/pkg/ports"
)

// ZapLogger adapts a zap.Logger to ports.Logger. Messages are not translated
// so that structured output stays stable for log processors.
type ZapLogger struct {
	z *zap.Logger
}

// NewZap builds a zap logger. mode "release" selects JSON production output,
// anything else the colored development encoder.
func NewZap(mode string, level ports.LogLevel) (*ZapLogger, error) {
	var config zap.Config
	if mode == "release" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel(level))

	z, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &ZapLogger{z: z}, nil
}

// NewZapFrom wraps an existing zap.Logger.
func NewZapFrom(z *zap.Logger) *ZapLogger {
	return &ZapLogger{z: z}
}

func zapLevel(level ports.LogLevel) zapcore.Level {
	switch level {
	case ports.LevelDebug:
		return zapcore.DebugLevel
	case ports.LevelInfo:
		return zapcore.InfoLevel
	case ports.LevelWarn:
		return zapcore.WarnLevel
	case ports.LevelError:
		return zapcore.ErrorLevel
	default:
		// quiet
		return zapcore.FatalLevel
	}
}

func (l *ZapLogger) Debug(msg string, args ...interface{}) { l.z.Debug(fmt.Sprintf(msg, args...)) }
func (l *ZapLogger) Info(msg string, args ...interface{})  { l.z.Info(fmt.Sprintf(msg, args...)) }
func (l *ZapLogger) Warn(msg string, args ...interface{})  { l.z.Warn(fmt.Sprintf(msg, args...)) }
func (l *ZapLogger) Error(msg string, args ...interface{}) { l.z.Error(fmt.Sprintf(msg, args...)) }

// WithComponent returns a logger tagging entries with a component field.
func (l *ZapLogger) WithComponent(component string) ports.Logger {
	return &ZapLogger{z: l.z.With(zap.String("component", component))}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.z.Sync()
}

var _ ports.Logger = (*ZapLogger)(nil)
