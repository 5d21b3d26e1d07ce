package ulogger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ordishs/gocore"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// ZLoggerWrapper is the default Logger. It writes JSON lines tagged with the
// service name, or aligned console lines when pretty output is on.
type ZLoggerWrapper struct {
	zerolog.Logger
	service string
	w       io.Writer
	pretty  bool
}

var zeroLevels = map[string]zerolog.Level{
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
	"PANIC": zerolog.PanicLevel,
}

var gocoreLevels = map[zerolog.Level]int{
	zerolog.DebugLevel: int(gocore.DEBUG),
	zerolog.InfoLevel:  int(gocore.INFO),
	zerolog.WarnLevel:  int(gocore.WARN),
	zerolog.ErrorLevel: int(gocore.ERROR),
	zerolog.FatalLevel: int(gocore.FATAL),
}

func NewZeroLogger(service string, options ...Option) *ZLoggerWrapper {
	if service == "" {
		service = "spv"
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	pretty := gocore.Config().GetBool("PRETTY_LOGS", true)
	if opts.pretty != nil {
		pretty = *opts.pretty
	}

	z := &ZLoggerWrapper{service: service, w: opts.writer, pretty: pretty}

	ctx := zerolog.New(opts.writer).With()
	if pretty {
		ctx = zerolog.New(consoleWriter(opts.writer, service)).With()
	} else {
		ctx = ctx.Str("service", service)
	}

	z.Logger = ctx.CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1 + opts.skip).Timestamp().Logger()
	z.SetLogLevel(opts.logLevel)

	return z
}

// consoleWriter renders "15:04:05 | LEVEL | service | message" lines, in
// gocore colours when writing to a terminal.
func consoleWriter(w io.Writer, service string) zerolog.ConsoleWriter {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}

	levelColors := map[string]int{
		"debug": colorBlue,
		"info":  colorGreen,
		"warn":  colorYellow,
		"error": colorRed,
		"fatal": colorRed,
		"panic": colorRed,
	}

	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
		FormatTimestamp: func(i interface{}) string {
			s, _ := i.(string)
			ts, _ := time.Parse(time.RFC3339, s)

			return ts.Format("15:04:05")
		},
		FormatLevel: func(i interface{}) string {
			name, _ := i.(string)

			c, ok := levelColors[name]
			if !ok {
				c = colorWhite
			}

			return fmt.Sprintf("| %s|", colorize(strings.ToUpper(fmt.Sprintf("%-6s", i)), c, noColor))
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("| %-6s| %s", service, i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		},
		FormatFieldValue: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("%s", i))
		},
		FormatCaller: func(i interface{}) string {
			return colorize(fmt.Sprintf("%-32s", shortCaller(i)), colorBold, noColor)
		},
	}
}

// shortCaller trims a caller path to its last elements, at most 32 chars.
func shortCaller(i interface{}) string {
	c, _ := i.(string)
	if c == "" {
		return c
	}

	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, c); err == nil {
			c = rel
		}
	}

	parts := strings.Split(c, "/")
	out := parts[len(parts)-1]

	for j := len(parts) - 2; j >= 0 && len(out)+len(parts[j])+1 <= 32; j-- {
		out = parts[j] + "/" + out
	}

	return out
}

func (z *ZLoggerWrapper) options(options []Option) *Options {
	opts := &Options{
		writer:     z.w,
		loggerType: "zerolog",
		logLevel:   z.levelName(),
		pretty:     &z.pretty,
	}

	for _, o := range options {
		o(opts)
	}

	return opts
}

// New returns a logger for another service sharing this logger's writer,
// level and output format unless overridden.
func (z *ZLoggerWrapper) New(service string, options ...Option) Logger {
	opts := z.options(options)

	return NewZeroLogger(service,
		WithWriter(opts.writer),
		WithLevel(opts.logLevel),
		WithPrettyLogs(*opts.pretty),
	)
}

// Duplicate returns a copy for the same service, optionally at another level.
func (z *ZLoggerWrapper) Duplicate(options ...Option) Logger {
	opts := z.options(options)

	dup := *z
	dup.SetLogLevel(opts.logLevel)

	return &dup
}

func (z *ZLoggerWrapper) SetLogLevel(logLevel string) {
	level, ok := zeroLevels[strings.ToUpper(logLevel)]
	if !ok {
		level = zerolog.InfoLevel
	}

	z.Logger = z.Logger.Level(level)
}

func (z *ZLoggerWrapper) levelName() string {
	for name, level := range zeroLevels {
		if level == z.Logger.GetLevel() {
			return name
		}
	}

	return "INFO"
}

// LogLevel reports the level on gocore's scale.
func (z *ZLoggerWrapper) LogLevel() int {
	if level, ok := gocoreLevels[z.Logger.GetLevel()]; ok {
		return level
	}

	return int(gocore.INFO)
}

func (z *ZLoggerWrapper) Debugf(format string, args ...interface{}) {
	z.Logger.Debug().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Infof(format string, args ...interface{}) {
	z.Logger.Info().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Warnf(format string, args ...interface{}) {
	z.Logger.Warn().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Errorf(format string, args ...interface{}) {
	z.Logger.Error().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Fatalf(format string, args ...interface{}) {
	z.Logger.Fatal().Msgf(format, args...)
}

// colorize wraps s in ANSI code c unless disabled, c is 0 or NO_COLOR is set.
func colorize(s interface{}, c int, disabled bool) string {
	if disabled || c == 0 || os.Getenv("NO_COLOR") != "" {
		return fmt.Sprintf("%s", s)
	}

	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
