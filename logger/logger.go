//go:generate mockgen -destination=loggertest/mock_logger.go -package=loggertest github.com/xy-planning-network/reply/logger Logger

package logger

import (
	"log"
	"os"
	"path"
	"regexp"
	"runtime"

	"github.com/fatih/color"
)

const (
	knownFrames = 2
	callerTmpl  = "%s:%d"
)

var replyPathRegex = regexp.MustCompile("reply/.*$")

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

func NewLogLevel(val string) LogLevel {
	switch val {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	return map[LogLevel]string{
		LogLevelDebug: "[DEBUG]",
		LogLevelInfo:  "[INFO]",
		LogLevelWarn:  "[WARN]",
		LogLevelError: "[ERROR]",
		LogLevelFatal: "[FATAL]",
		LogLevelUnk:   "[UNK]",
	}[ll]
}

// ColorLogger implements Logger using log, colorizing each message by its level.
type ColorLogger struct {
	skip int
	env  string
	l    *log.Logger
	ll   LogLevel
}

// New constructs a Logger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The default environment is read from ENVIRONMENT, falling back to DEVELOPMENT.
// The default log level is read from LOG_LEVEL, falling back to INFO.
//
// If SENTRY_DSN is set, the returned Logger is a *SentryLogger.
func New(opts ...LoggerOptFn) Logger {
	l := &ColorLogger{
		env: getEnvOrString("ENVIRONMENT", "DEVELOPMENT"),
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  LogLevelInfo,
	}

	if ll := NewLogLevel(os.Getenv("LOG_LEVEL")); ll != LogLevelUnk {
		l.ll = ll
	}

	for _, opt := range opts {
		opt(l)
	}

	if sentryDsn := os.Getenv("SENTRY_DSN"); sentryDsn != "" {
		l.Info("SENTRY_DSN set, configuring SentryLogger", nil)
		return NewSentryLogger(l, sentryDsn)
	}

	return l
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *ColorLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *ColorLogger) Debug(msg string, ctx *LogContext) {
	if l.ll > LogLevelDebug {
		return
	}

	l.log(color.WhiteString, LogLevelDebug, msg, ctx)
}

// Error writes an error log.
func (l *ColorLogger) Error(msg string, ctx *LogContext) {
	if l.ll > LogLevelError {
		return
	}

	l.log(color.RedString, LogLevelError, msg, ctx)
}

// Fatal writes a fatal log.
func (l *ColorLogger) Fatal(msg string, ctx *LogContext) {
	if l.ll > LogLevelFatal {
		return
	}

	l.log(color.MagentaString, LogLevelFatal, msg, ctx)
}

// Info writes an info log.
func (l *ColorLogger) Info(msg string, ctx *LogContext) {
	if l.ll > LogLevelInfo {
		return
	}

	l.log(color.BlueString, LogLevelInfo, msg, ctx)
}

// Warn writes a warning log.
func (l *ColorLogger) Warn(msg string, ctx *LogContext) {
	if l.ll > LogLevelWarn {
		return
	}

	l.log(color.YellowString, LogLevelWarn, msg, ctx)
}

// LogLevel returns the LogLevel set for the ColorLogger.
func (l *ColorLogger) LogLevel() LogLevel { return l.ll }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *ColorLogger) Skip() int { return l.skip }

// log executes printing the log message,
// including any context if available.
func (l *ColorLogger) log(colorizer func(string, ...any) string, level LogLevel, msg string, ctx *LogContext) {
	var site string
	if ctx != nil && ctx.Caller != "" {
		site = ctx.Caller
	} else {
		// NOTE(dlk): skip the number of frames the ColorLogger has
		// and however many the ColorLogger is configured with
		_, file, line, _ := runtime.Caller(knownFrames + l.skip)
		site = fmtCaller(file, line)
	}

	msg = colorizer("%s %s '%s'", level, site, msg)
	if ctx == nil {
		l.l.Println(msg)
		return
	}

	l.l.Println(msg, "log_context:", ctx)
}

func getEnvOrString(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

// immediateFilepath trims file down to the file and the directory it is in,
// unless the file is part of reply, e.g.,:
//
//	/home/dlk/my-project/main.go => my-project/main.go
//	/home/dlk/go/pkg/mod/github.com/xy-planning-network/reply/http/resp/responder.go => reply/http/resp/responder.go
func immediateFilepath(file string) string {
	if match := replyPathRegex.FindString(file); match != "" {
		return match
	}

	fullPath, file := path.Split(file)
	return path.Base(fullPath) + "/" + file
}
