// Package logging provides pre-configured logrus loggers, one per launcher
// component, writing to stderr and a per-day log file in the user config dir.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AppDirName is the folder under the user config directory holding launcher
// data (logs, preferences written by the shell).
const AppDirName = "HytideLauncher"

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger creates and returns a pre-configured logger for a specific
// component. It uses a singleton pattern per component to avoid
// re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()

	level, err := logrus.ParseLevel(os.Getenv("HYTIDE_LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	writers := []io.Writer{os.Stderr}
	if file := openLogFile(component); file != nil {
		writers = append(writers, file)
	}
	logger.SetOutput(io.MultiWriter(writers...))

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// LogDir returns the directory where launcher log files are written
func LogDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, AppDirName, "logs"), nil
}

func openLogFile(component string) *os.File {
	dir, err := LogDir()
	if err != nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}

	name := fmt.Sprintf("%s-%s.log", component, time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil
	}
	return file
}
