package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

type Logger struct {
	zapLogger *zap.Logger
}

type config struct {
	noStdout bool
}

type Option func(*config)

// NoStdout writes to the log file only. Used by tests to keep output quiet.
func NoStdout(c *config) {
	c.noStdout = true
}

func NewLogger(filePath string, level Level, options ...Option) (*Logger, error) {
	var loggerConfig config
	for _, option := range options {
		option(&loggerConfig)
	}

	outputPaths := []string{filePath}
	if !loggerConfig.noStdout {
		outputPaths = append(outputPaths, "stdout")
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.OutputPaths = outputPaths

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{zapLogger: zapLogger}, nil
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{zapLogger: l.zapLogger.With(fields...)}
}

func (l *Logger) Debug(msg string, fields ...Field) {
	l.zapLogger.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...Field) {
	l.zapLogger.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.zapLogger.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...Field) {
	l.zapLogger.Error(msg, fields...)
}

func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}
