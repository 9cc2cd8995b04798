package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger for all engine packages
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Log.SetLevel(logrus.InfoLevel)

	if lvl, err := logrus.ParseLevel(os.Getenv("MAPFOG_LOG_LEVEL")); err == nil {
		Log.SetLevel(lvl)
	}
}

// For returns an entry tagged with the component name
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
