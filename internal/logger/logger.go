package logger

import (
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used across the module.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	With(fields ...Field) Logger
	Named(name string) Logger
	Sync() error
}

// Field is a structured log field.
type Field = zap.Field

// Field constructors.
var (
	String   = zap.String
	Strings  = zap.Strings
	Int      = zap.Int
	Int64    = zap.Int64
	Bool     = zap.Bool
	Time     = zap.Time
	Duration = zap.Duration
	Err      = zap.Error
	Any      = zap.Any
)

// Global logger instance.
var globalLogger Logger = NewNoopLogger()

// GetGlobalLogger returns the global logger instance.
func GetGlobalLogger() Logger {
	return globalLogger
}

// SetGlobalLogger sets the global logger instance.
func SetGlobalLogger(l Logger) {
	if l != nil {
		globalLogger = l
	}
}

// zapLogger implements Logger using zap.
type zapLogger struct {
	zap *zap.Logger
}

// NewProductionLogger creates a JSON logger suitable for production use.
func NewProductionLogger() Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	l, _ := config.Build(zap.AddCallerSkip(1))

	return &zapLogger{zap: l}
}

// NewDevelopmentLogger creates a colored console logger for interactive use.
func NewDevelopmentLogger() Logger {
	return NewDevelopmentLoggerWithLevel(zapcore.DebugLevel)
}

// NewDevelopmentLoggerWithLevel creates a development logger with the given level.
func NewDevelopmentLoggerWithLevel(level zapcore.Level) Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    coloredLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zap.NewAtomicLevelAt(level),
	)

	return &zapLogger{zap: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
}

// NewNoopLogger creates a logger that does nothing.
func NewNoopLogger() Logger {
	return &zapLogger{zap: zap.NewNop()}
}

// Level color palette for the console encoder.
var (
	debugColor = color.New(color.FgCyan)
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	fatalColor = color.New(color.FgMagenta, color.Bold)
)

func coloredLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	text := level.CapitalString()

	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(debugColor.Sprint(text))
	case zapcore.InfoLevel:
		enc.AppendString(infoColor.Sprint(text))
	case zapcore.WarnLevel:
		enc.AppendString(warnColor.Sprint(text))
	case zapcore.ErrorLevel:
		enc.AppendString(errorColor.Sprint(text))
	default:
		enc.AppendString(fatalColor.Sprint(text))
	}
}

func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.zap.Debug(msg, fields...)
}

func (l *zapLogger) Info(msg string, fields ...Field) {
	l.zap.Info(msg, fields...)
}

func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.zap.Warn(msg, fields...)
}

func (l *zapLogger) Error(msg string, fields ...Field) {
	l.zap.Error(msg, fields...)
}

func (l *zapLogger) Fatal(msg string, fields ...Field) {
	l.zap.Fatal(msg, fields...)
}

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{zap: l.zap.With(fields...)}
}

func (l *zapLogger) Named(name string) Logger {
	return &zapLogger{zap: l.zap.Named(name)}
}

func (l *zapLogger) Sync() error {
	return l.zap.Sync()
}
