// Package logger holds the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It starts out writing warnings to stderr so that
// packages used before Init (tests, tools) still have somewhere to log.
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Init configures the global logger. LOG_LEVEL and LOG_FORMAT in the
// environment take precedence over the level and format arguments.
func Init(out io.Writer, level, format string) {
	Log = logrus.New()

	if env, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = env
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)

	if env, ok := os.LookupEnv("LOG_FORMAT"); ok {
		format = env
	}
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	}

	if out == nil {
		out = os.Stderr
	}
	Log.SetOutput(out)
}

// session tags every entry from For so separate runs can be told apart in one file
var session string

// SetSession records the run's session ID
func SetSession(id string) {
	session = id
}

// For returns an entry tagged with the component name, the way every stage logs
func For(component string) *logrus.Entry {
	fields := logrus.Fields{"component": component}
	if session != "" {
		fields["session"] = session
	}
	return Log.WithFields(fields)
}

// Silence discards all output; used by tests that exercise failure paths
func Silence() {
	Log.SetOutput(io.Discard)
}
