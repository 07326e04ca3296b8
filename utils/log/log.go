package log

import (
	"log/slog"
	"os"
	"strings"
)

// BuildLogger arma el logger JSON que usan todos los módulos. El nivel se lee de la configuración
// ("debug", "info", "warn" o "error"); cualquier otro valor deja el nivel en INFO.
func BuildLogger(level string) *slog.Logger {
	ops := &slog.HandlerOptions{
		AddSource: true,
		Level:     ParseLevel(level),
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, ops))
}

// ParseLevel traduce el nivel de log de la configuración a un slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}

func StringAttr(key, value string) slog.Attr {
	return slog.String(key, value)
}

func IntAttr(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func AnyAttr(key string, value any) slog.Attr {
	return slog.Any(key, value)
}
