package log

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// zerologAdapter wraps a zerolog.Logger to implement the Logger interface.
type zerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a new Logger implemented with zerolog. With
// pretty enabled the output goes through the console writer; otherwise the
// logger emits plain JSON lines.
func NewZerologAdapter(level zerolog.Level, pretty bool) Logger {
	var zlog zerolog.Logger
	if pretty {
		zlog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Logger()
	} else {
		zlog = zerolog.New(os.Stderr).
			Level(level).
			With().
			Timestamp().
			Logger()
	}
	return &zerologAdapter{logger: zlog}
}

// addTraceInfo attaches trace_id and span_id when the context carries a
// valid span, so log lines can be correlated with traces.
func addTraceInfo(ctx context.Context, event *zerolog.Event) *zerolog.Event {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		event = event.Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String())
	}
	return event
}

func (z *zerologAdapter) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	event := addTraceInfo(ctx, z.logger.Debug())
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(msg)
}

func (z *zerologAdapter) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	event := addTraceInfo(ctx, z.logger.Info())
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(msg)
}

func (z *zerologAdapter) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	event := addTraceInfo(ctx, z.logger.Warn())
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(msg)
}

func (z *zerologAdapter) Error(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	event := addTraceInfo(ctx, z.logger.Error().Err(err))
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(msg)
}

func (z *zerologAdapter) Fatal(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	// zerolog's Fatal calls os.Exit after writing the event.
	event := addTraceInfo(ctx, z.logger.Fatal().Err(err))
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(msg)
}

// With returns a new logger with the provided fields added to its context.
// Trace information is added per call so it stays current.
func (z *zerologAdapter) With(fields map[string]interface{}) Logger {
	newLogger := z.logger.With().Fields(fields).Logger()
	return &zerologAdapter{logger: newLogger}
}
