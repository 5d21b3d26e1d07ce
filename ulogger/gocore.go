package ulogger

import (
	"github.com/ordishs/gocore"
)

// GoCoreLogger routes to the gocore logger of the named service. gocore fixes
// the level when a logger is created, so SetLogLevel re-creates it.
type GoCoreLogger struct {
	*gocore.Logger
	service string
}

func NewGoCoreLogger(service string, options ...Option) *GoCoreLogger {
	if service == "" {
		service = "spv"
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	return &GoCoreLogger{
		Logger:  gocore.Log(service, gocore.NewLogLevelFromString(opts.logLevel)),
		service: service,
	}
}

// New returns a logger for another service at this logger's level unless an
// option overrides it.
func (g *GoCoreLogger) New(service string, options ...Option) Logger {
	opts := &Options{logLevel: g.levelName()}
	for _, o := range options {
		o(opts)
	}

	return NewGoCoreLogger(service, WithLevel(opts.logLevel))
}

func (g *GoCoreLogger) Duplicate(options ...Option) Logger {
	opts := &Options{logLevel: g.levelName()}
	for _, o := range options {
		o(opts)
	}

	return NewGoCoreLogger(g.service, WithLevel(opts.logLevel))
}

func (g *GoCoreLogger) LogLevel() int {
	return int(g.Logger.GetLogLevel())
}

func (g *GoCoreLogger) SetLogLevel(level string) {
	g.Logger = gocore.Log(g.service, gocore.NewLogLevelFromString(level))
}

func (g *GoCoreLogger) levelName() string {
	switch g.Logger.GetLogLevel() {
	case gocore.DEBUG:
		return "DEBUG"
	case gocore.WARN:
		return "WARN"
	case gocore.ERROR:
		return "ERROR"
	case gocore.FATAL:
		return "FATAL"
	default:
		return "INFO"
	}
}
