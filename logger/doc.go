/*
Package logger provides logging functionality to a reply app by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [ColorLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal] produce messages.

# ColorLogger

The [ColorLogger] is the implementation of [Logger] returned by the [New] function.
Each level prints in its own color when writing to a terminal.

Log messages emitted by [ColorLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [DEBUG] web/dashboard_handler.go:43 'such fun!' log_context: {"data":{"id":1}}

The file, line number, and parent directory of the caller comprise the call site.
The log context is a JSON-encoded [*LogContext].

# SentryLogger

When SENTRY_DSN is set, [New] wraps the [ColorLogger] in a [SentryLogger],
which additionally reports the [LogContext.Error] of warnings and above.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.
*/
package logger
