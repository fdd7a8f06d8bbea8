package logger

import (
	"log/slog"
	"os"
)

var l *slog.Logger

func Init() {
	l = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(l)
	l.Info("logger initialized")
}

func attrs(fields map[string]any) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}

func Info(msg string, fields map[string]any) {
	logger().Info(msg, attrs(fields)...)
}

func Warn(msg string, fields map[string]any) {
	logger().Warn(msg, attrs(fields)...)
}

func Error(msg string, fields map[string]any) {
	logger().Error(msg, attrs(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	logger().Error(msg, attrs(fields)...)
	os.Exit(1)
}

func logger() *slog.Logger {
	if l == nil {
		Init()
	}
	return l
}
