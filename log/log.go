package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func init() {
	Log.Out = os.Stdout
}

// EnableDebug turns on debug-level output.
func EnableDebug() {
	Log.SetLevel(logrus.DebugLevel)
}
