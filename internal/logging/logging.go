// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package logging contains the logging functionality for the attendance exporter.
package logging

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"

	slogotel "github.com/remychantenay/slog-otel"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

type ctxKey string

// Public constants
const (
	ErrKey = "error"
)

// Private constants
const (
	slogFields      ctxKey = "slog_fields"
	logLevelDefault        = slog.LevelInfo

	// Log levels
	debug = "debug"
	warn  = "warn"
	err   = "error"
	info  = "info"

	// OTEL_LOGS_EXPORTER value that enables the OTel log bridge
	otlpExporter = "otlp"

	// Log formats
	formatJSON = "json"

	// Instrumentation scope of records bridged to the OTel logger provider
	instrumentationName = "github.com/linuxfoundation/lfx-v2-meeting-attendance"

	// Log field for conditions that stop the run.
	priorityCritical = "critical"
)

type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	return h.Handler.Handle(ctx, r)
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		// copy so sibling contexts never share a backing array
		attrs := make([]slog.Attr, 0, len(v)+1)
		attrs = append(attrs, v...)
		attrs = append(attrs, attr)
		return context.WithValue(parent, slogFields, attrs)
	}

	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// InitStructureLogConfig sets the structured log behavior. Records are written
// to stderr because stdout is reserved for the interactive prompts.
func InitStructureLogConfig() slog.Handler {
	return initStructureLogConfig(os.Stderr)
}

func initStructureLogConfig(w io.Writer) slog.Handler {
	logOptions := &slog.HandlerOptions{}
	var h slog.Handler

	// Configure log level
	logLevel := os.Getenv("LOG_LEVEL")
	switch logLevel {
	case debug:
		logOptions.Level = slog.LevelDebug
	case warn:
		logOptions.Level = slog.LevelWarn
	case err:
		logOptions.Level = slog.LevelError
	case info:
		logOptions.Level = slog.LevelInfo
	default:
		logOptions.Level = logLevelDefault
	}

	// Configure source information
	addSource := os.Getenv("LOG_ADD_SOURCE")
	logOptions.AddSource = addSource == "true" || addSource == "t" || addSource == "1"

	if os.Getenv("LOG_FORMAT") == formatJSON {
		h = slog.NewJSONHandler(w, logOptions)
	} else {
		h = slog.NewTextHandler(w, logOptions)
	}
	log.SetFlags(log.Llongfile)

	var next slog.Handler = h
	if os.Getenv("OTEL_LOGS_EXPORTER") == otlpExporter {
		next = fanoutHandler{
			level:    logOptions.Level,
			handlers: []slog.Handler{h, otelslog.NewHandler(instrumentationName)},
		}
	}
	// trace and span ids of the active span are added to every record
	logger := contextHandler{slogotel.OtelHandler{Next: next}}
	slog.SetDefault(slog.New(logger))

	slog.Debug("log config",
		"logLevel", logOptions.Level,
		"addSource", logOptions.AddSource,
	)

	return h
}

// Priority creates a slog.Attr for error priority classification
func Priority(level string) slog.Attr {
	return slog.String("priority", level)
}

// PriorityCritical creates a slog.Attr for errors that halt the export run.
func PriorityCritical() slog.Attr {
	return Priority(priorityCritical)
}

// fanoutHandler sends every record at or above level to each handler
type fanoutHandler struct {
	level    slog.Leveler
	handlers []slog.Handler
}

func (f fanoutHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= f.level.Level()
}

func (f fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	for _, h := range f.handlers {
		err = errors.Join(err, h.Handle(ctx, r.Clone()))
	}
	return err
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, 0, len(f.handlers))
	for _, h := range f.handlers {
		handlers = append(handlers, h.WithAttrs(attrs))
	}
	return fanoutHandler{level: f.level, handlers: handlers}
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, 0, len(f.handlers))
	for _, h := range f.handlers {
		handlers = append(handlers, h.WithGroup(name))
	}
	return fanoutHandler{level: f.level, handlers: handlers}
}
