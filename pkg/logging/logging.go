// Package logging owns the shared logrus setup. Packages and commands ask
// for component-scoped entries so log lines carry their origin.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// envLevel overrides the default log level (debug, info, warn, error).
const envLevel = "ZMKMAN_LOG_LEVEL"

var (
	base *logrus.Logger
	once sync.Once
)

func baseLogger() *logrus.Logger {
	once.Do(func() {
		base = logrus.New()
		base.SetOutput(os.Stderr)
		base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		base.SetLevel(levelFromEnv(os.Getenv(envLevel)))
	})
	return base
}

// levelFromEnv maps the override variable to a level, keeping the warn
// default when it is unset or unparseable.
func levelFromEnv(raw string) logrus.Level {
	if raw == "" {
		return logrus.WarnLevel
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return logrus.WarnLevel
	}
	return lvl
}

// NewLogger returns an entry tagged with the given component name.
func NewLogger(component string) *logrus.Entry {
	return baseLogger().WithField("component", component)
}

// SetVerbose raises the shared logger to debug level. The root command
// wires this to its --verbose flag.
func SetVerbose() {
	baseLogger().SetLevel(logrus.DebugLevel)
}
