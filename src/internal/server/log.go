package server

import (
	"os"
	"path/filepath"

	l "github.com/sirupsen/logrus"
)

const logFilename = "libsearch.log"

// setupLogging directs logrus output to a file under logDir at the given
// level. If the log file does not exist yet, it is created.
func setupLogging(logDir, logLevel string) (err error) {
	level, err := l.ParseLevel(logLevel)
	if err != nil {
		return
	}

	path := filepath.Join(logDir, logFilename)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return
	}

	l.SetOutput(f)
	l.SetLevel(level)
	return
}
