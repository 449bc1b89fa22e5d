// Package audit records exchange commands to an append-only file, one JSON
// record per line. Plain chat is never recorded.
package audit

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

type Log struct {
	file *os.File
	zl   zerolog.Logger
}

func NewLog(path string) (*Log, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open exchange log %s: %w", path, err)
	}

	zl := zerolog.New(file).With().Timestamp().Logger()
	return &Log{file: file, zl: zl}, nil
}

// Record appends one entry: who sent which exchange command from where.
func (l *Log) Record(remote, name, message string) {
	l.zl.Log().
		Str("remote", remote).
		Str("name", name).
		Str("message", message).
		Send()
}

func (l *Log) Close() error {
	return l.file.Close()
}
