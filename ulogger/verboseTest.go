package ulogger

import (
	"sync"
	"testing"
)

// VerboseTestLogger sends every line to t.Logf, so output only shows for
// failing tests or under go test -v.
type VerboseTestLogger struct {
	t       *testing.T
	service string
	mutex   *sync.Mutex
}

func NewVerboseTestLogger(t *testing.T) *VerboseTestLogger {
	return &VerboseTestLogger{t: t, mutex: &sync.Mutex{}}
}

func (l *VerboseTestLogger) LogLevel() int {
	return 0
}

func (l *VerboseTestLogger) SetLogLevel(level string) {}

func (l *VerboseTestLogger) New(service string, options ...Option) Logger {
	return &VerboseTestLogger{t: l.t, service: service, mutex: l.mutex}
}

func (l *VerboseTestLogger) Duplicate(options ...Option) Logger {
	return l
}

func (l *VerboseTestLogger) logf(level, format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.service != "" {
		l.t.Logf("["+level+"] ["+l.service+"] "+format, args...)
		return
	}

	l.t.Logf("["+level+"] "+format, args...)
}

func (l *VerboseTestLogger) Debugf(format string, args ...interface{}) {
	l.logf("DEBUG", format, args...)
}

func (l *VerboseTestLogger) Infof(format string, args ...interface{}) {
	l.logf("INFO", format, args...)
}

func (l *VerboseTestLogger) Warnf(format string, args ...interface{}) {
	l.logf("WARN", format, args...)
}

func (l *VerboseTestLogger) Errorf(format string, args ...interface{}) {
	l.logf("ERROR", format, args...)
}

func (l *VerboseTestLogger) Fatalf(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.t.Fatalf("[FATAL] "+format, args...)
}
