package internal

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var log atomic.Pointer[logrus.Logger]

func init() {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	log.Store(l)
}

func logger() *logrus.Logger {
	return log.Load()
}

// SetLogger replaces the runtime logger. A nil logger is ignored.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log.Store(l)
	}
}
