// Package logger wraps zerolog behind a small key/value logging API shared
// by the whole service.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl zerolog.Logger
}

// NewLogger builds a JSON logger writing to stdout. Unknown or empty level
// strings fall back to info.
func NewLogger(level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zl := zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Nop returns a logger that discards everything. Intended for tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Debug(msg string, kv ...any) {
	emit(l.zl.Debug(), msg, kv)
}

func (l *Logger) Info(msg string, kv ...any) {
	emit(l.zl.Info(), msg, kv)
}

func (l *Logger) Error(msg string, kv ...any) {
	emit(l.zl.Error(), msg, kv)
}

// emit attaches alternating key/value pairs to the event. A trailing key
// without a value and non-string keys are skipped rather than treated as
// errors.
func emit(e *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		switch v := kv[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		case string:
			e = e.Str(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	e.Msg(msg)
}
