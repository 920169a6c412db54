/*
Package relaylog provides structured logging for the bus and play runtime
using zerolog.

The package wraps zerolog to provide JSON-structured logging with
component-specific loggers, configurable log levels, and helper functions for
the fields that actually recur in this runtime: actor name, concrete
subject, and play name. All logs include timestamps and support filtering by
severity level for production debugging.

# Core Components

Global Logger:
  - Package-level zerolog.Logger instance
  - Initialized once via relaylog.Init()
  - Accessible from all packages in this module
  - Thread-safe concurrent writes

Log Levels:
  - Debug: Detailed debugging information
  - Info: General informational messages
  - Warn: Warning messages (potential issues)
  - Error: Error messages (operation failed)
  - Fatal: Critical errors (process exits)

Configuration:
  - Level: Filter messages below threshold
  - JSONOutput: JSON vs human-readable console
  - Output: io.Writer for log destination (stdout, file)

Context Loggers:
  - WithComponent: Add a component name to all logs
  - WithActor: Add the actor name to all logs
  - WithSubject: Add the concrete bus subject to all logs
  - WithPlay: Add the play name to all logs

# Usage

Initializing the Logger:

	import "github.com/cuemby/relay/pkg/relaylog"

	// JSON output (production)
	relaylog.Init(relaylog.Config{
		Level:      relaylog.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

	// Console output (development)
	relaylog.Init(relaylog.Config{
		Level:      relaylog.DebugLevel,
		JSONOutput: false,
		Output:     os.Stdout,
	})

Simple Logging:

	relaylog.Info("play starting")
	relaylog.Debug("dispatching to handler")
	relaylog.Warn("inbox at capacity, dropping message")
	relaylog.Error("handler failed")
	relaylog.Fatal("cannot start without a transport") // exits process

Component and Context Loggers:

	busLog := relaylog.WithComponent("bus")
	busLog.Info().Msg("connected to transport")

	actorLog := relaylog.WithActor("page.versions.consumer").
		With().Str("play", "ingest").Logger()
	actorLog.Info().Msg("actor started")
	actorLog.Error().Err(err).Str("subject", subj).Msg("event processing failed")

# Log Output Examples

JSON Format (production):

	{"level":"info","component":"play","play":"ingest","time":"2024-10-13T10:30:00Z","message":"play started"}
	{"level":"error","actor":"page.versions.consumer","subject":"pages.p1.versions.3","time":"2024-10-13T10:30:01Z","message":"event processing failed"}

Console Format (development):

	2024-10-13T10:30:00Z INF play started component=play play=ingest
	2024-10-13T10:30:01Z ERR event processing failed actor=page.versions.consumer subject=pages.p1.versions.3

# Design Patterns

Global Logger Pattern: a single package-level Logger, initialized once at
process start, accessible from all packages without being threaded through
every call.

Context Logger Pattern: child loggers carry actor/subject/play fields so
call sites don't repeat them on every log line.

Error Logging Pattern: always attach errors with .Err(err) rather than
formatting them into the message string, so they stay queryable and keep
their wrapped chain visible to log tooling.

# Best Practices

Do:
  - Use Info level for production
  - Create component/actor-specific child loggers instead of repeating fields
  - Log errors with .Err() to keep the wrapped chain intact

Don't:
  - Log payload contents that may carry sensitive data
  - Use Debug level in production
  - Log inside a tight per-message loop without sampling
*/
package relaylog
