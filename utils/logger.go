package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = NewLogger(false)

// NewLogger builds the logger handed to device sessions. Verbose enables
// debug output, which includes every shell command sent to a device.
func NewLogger(verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000000",
	})
	setLevel(l, verbose)
	return l
}

func setLevel(l *logrus.Logger, verbose bool) {
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
}

// Logger returns the process-wide logger used by the cli and server.
func Logger() *logrus.Logger {
	return logger
}

func SetVerbose(verbose bool) {
	setLevel(logger, verbose)
}

func IsVerbose() bool {
	return logger.IsLevelEnabled(logrus.DebugLevel)
}

func Verbose(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}
