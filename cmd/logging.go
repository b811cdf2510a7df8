package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
)

// newLogger returns a logger writing to w. Debug messages are only emitted
// when verbose is set.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
