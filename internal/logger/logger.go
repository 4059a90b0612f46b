package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base *zap.Logger

func Init() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	)

	base = zap.New(core)
	base.Info("logger initialized")
}

func fieldsOf(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func get() *zap.Logger {
	if base == nil {
		Init()
	}
	return base
}

func Info(msg string, fields map[string]any) {
	get().Info(msg, fieldsOf(fields)...)
}

func Warn(msg string, fields map[string]any) {
	get().Warn(msg, fieldsOf(fields)...)
}

func Error(msg string, fields map[string]any) {
	get().Error(msg, fieldsOf(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	get().Fatal(msg, fieldsOf(fields)...)
}
