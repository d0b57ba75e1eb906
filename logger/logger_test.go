package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reply/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger/logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func init() {
	color.NoColor = true
}

func TestNewLogLevel(t *testing.T) {
	tcs := []struct {
		name     string
		input    string
		expected logger.LogLevel
	}{
		{"Debug", "DEBUG", logger.LogLevelDebug},
		{"Info", "INFO", logger.LogLevelInfo},
		{"Warn", "WARN", logger.LogLevelWarn},
		{"Error", "ERROR", logger.LogLevelError},
		{"Fatal", "FATAL", logger.LogLevelFatal},
		{"Lowercase", "debug", logger.LogLevelUnk},
		{"Zero-Value", "", logger.LogLevelUnk},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual := logger.NewLogLevel(tc.input)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestColorLoggerLevels(t *testing.T) {
	tcs := []struct {
		name     string
		level    logger.LogLevel
		log      func(l logger.Logger)
		expected string
	}{
		{"Debug", logger.LogLevelDebug, func(l logger.Logger) { l.Debug("debug", nil) }, "[DEBUG]"},
		{"Info", logger.LogLevelDebug, func(l logger.Logger) { l.Info("info", nil) }, "[INFO]"},
		{"Warn", logger.LogLevelDebug, func(l logger.Logger) { l.Warn("warn", nil) }, "[WARN]"},
		{"Error", logger.LogLevelDebug, func(l logger.Logger) { l.Error("error", nil) }, "[ERROR]"},
		{"Fatal", logger.LogLevelDebug, func(l logger.Logger) { l.Fatal("fatal", nil) }, "[FATAL]"},
		{"Debug-Suppressed", logger.LogLevelInfo, func(l logger.Logger) { l.Debug("debug", nil) }, ""},
		{"Info-Suppressed", logger.LogLevelWarn, func(l logger.Logger) { l.Info("info", nil) }, ""},
		{"Warn-Suppressed", logger.LogLevelError, func(l logger.Logger) { l.Warn("warn", nil) }, ""},
		{"Error-Suppressed", logger.LogLevelFatal, func(l logger.Logger) { l.Error("error", nil) }, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			t.Setenv("SENTRY_DSN", "")
			b := new(bytes.Buffer)
			l := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(tc.level))

			// Act
			tc.log(l)

			// Assert
			if tc.expected == "" {
				require.Zero(t, b.Len())
				return
			}

			require.Equal(t, tc.expected, logLevelRegexp.FindString(b.String()))
			require.Regexp(t, fpRegexp, b.String())
		})
	}
}

func TestColorLoggerLogContext(t *testing.T) {
	// Arrange
	t.Setenv("SENTRY_DSN", "")
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b)))
	ctx := &logger.LogContext{Caller: "elsewhere.go:10", Error: errors.New("boom")}

	// Act
	l.Info("something happened", ctx)

	// Assert
	require.Contains(t, b.String(), "elsewhere.go:10")
	require.NotRegexp(t, fpRegexp, b.String())
	require.Equal(t, "something happened", msgRegexp.FindStringSubmatch(b.String())[1])
	require.Contains(t, b.String(), `log_context: {"error":"boom"}`)
}

func TestColorLoggerLogLevelEnv(t *testing.T) {
	// Arrange
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("LOG_LEVEL", "ERROR")

	// Act
	l := logger.New()

	// Assert
	require.Equal(t, logger.LogLevelError, l.LogLevel())
}

func TestColorLoggerAddSkip(t *testing.T) {
	// Arrange
	t.Setenv("SENTRY_DSN", "")
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b))).(logger.SkipLogger)

	// Act
	sl := l.AddSkip(1)
	helper := func() { sl.Info("skipped", nil) }
	helper()

	// Assert
	require.Equal(t, 0, l.Skip())
	require.Equal(t, 1, sl.Skip())
	require.Regexp(t, fpRegexp, b.String())
}
