package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// Initializes the global logger.
//
// An empty or invalid level falls back to info. The format is
// either "json" or "text".
func InitLogger(level, format string) *logrus.Logger {
	log := logrus.New()

	if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(parsed)
	} else {
		log.SetLevel(logrus.InfoLevel)
		if level != "" {
			log.WithField("invalid_level", level).Warn("Invalid log level, using info")
		}
	}

	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.SetOutput(os.Stderr)

	logger = log
	return log
}

// Returns the global logger. A default logger is created when
// InitLogger was never called.
func GetLogger() *logrus.Logger {
	if logger == nil {
		return InitLogger("info", "text")
	}
	return logger
}

// Silences the global logger. Used by tests.
func Discard() {
	GetLogger().SetOutput(io.Discard)
}

func WithCompetition(name string) *logrus.Entry {
	return GetLogger().WithField("competition", name)
}

func WithPlayer(id uint64) *logrus.Entry {
	return GetLogger().WithField("player_id", id)
}
