// Package logging builds the structured request logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"palette-studio/internal/config"
)

// New returns a logrus logger configured from the environment: JSON in
// production, colored text in development, level from LOG_LEVEL.
func New(env *config.EnvConfig) *logrus.Logger {
	return NewWithOutput(env, os.Stdout)
}

// NewWithOutput is New writing to out.
func NewWithOutput(env *config.EnvConfig, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if env.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}

	level, err := logrus.ParseLevel(env.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		log.WithField("log_level", env.LogLevel).Warn("unknown log level, using info")
	}
	log.SetLevel(level)

	return log
}
