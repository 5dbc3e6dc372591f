package log

import "context"

// Logger defines the structured logging interface used by the server wiring.
// Leaf packages log through the zerolog global instead.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...map[string]interface{})
	Info(ctx context.Context, msg string, fields ...map[string]interface{})
	Warn(ctx context.Context, msg string, fields ...map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	Fatal(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	With(fields map[string]interface{}) Logger
}
