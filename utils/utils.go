package utils

import (
	"fmt"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	LogMaxBackups = 5
	LogMaxAgeDays = 28
)

// NewLog returns a logger writing to <dir><name>.log with rotation. An empty
// dir logs to stderr.
func NewLog(dir, name string, maxSizeMB int) *log.Logger {
	var out io.Writer = os.Stderr
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			panic(err)
		}
		out = &lumberjack.Logger{
			Filename:   filepath.Join(dir, fmt.Sprintf("%s.log", name)),
			MaxSize:    maxSizeMB,
			MaxBackups: LogMaxBackups,
			MaxAge:     LogMaxAgeDays,
			Compress:   true,
		}
	}
	return log.New(out, fmt.Sprintf("[%s] ", name), log.LstdFlags|log.Lmicroseconds)
}
