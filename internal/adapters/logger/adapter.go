// Package logger provides adapters for the logging interface.
package logger

import (
	"context"
)

// Logger defines the logging interface used throughout the application.
// goLibMyCarrier's zap logger satisfies it and can be wrapped with ZapAdapter.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]any)
	Debug(ctx context.Context, msg string, fields map[string]any)
	Warn(ctx context.Context, msg string, fields map[string]any)
	Error(ctx context.Context, msg string, err error, fields map[string]any)
}

// ComponentField is the field name carrying the emitting component.
const ComponentField = "component"

// ZapAdapter tags every entry with a component name before forwarding it.
type ZapAdapter struct {
	log       Logger
	component string
}

// NewZapAdapter creates a new ZapAdapter wrapping the given logger.
// An empty component leaves entries untagged.
func NewZapAdapter(log Logger, component string) *ZapAdapter {
	return &ZapAdapter{log: log, component: component}
}

// For returns an adapter over the same logger tagged with another component.
func (a *ZapAdapter) For(component string) *ZapAdapter {
	return &ZapAdapter{log: a.log, component: component}
}

// Info logs an info message.
func (a *ZapAdapter) Info(ctx context.Context, msg string, fields map[string]any) {
	a.log.Info(ctx, msg, a.tag(fields))
}

// Debug logs a debug message.
func (a *ZapAdapter) Debug(ctx context.Context, msg string, fields map[string]any) {
	a.log.Debug(ctx, msg, a.tag(fields))
}

// Warn logs a warning message.
func (a *ZapAdapter) Warn(ctx context.Context, msg string, fields map[string]any) {
	a.log.Warn(ctx, msg, a.tag(fields))
}

// Error logs an error message.
func (a *ZapAdapter) Error(ctx context.Context, msg string, err error, fields map[string]any) {
	a.log.Error(ctx, msg, err, a.tag(fields))
}

// tag copies fields and adds the component; the caller's map is never modified.
func (a *ZapAdapter) tag(fields map[string]any) map[string]any {
	if a.component == "" {
		return fields
	}
	tagged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		tagged[k] = v
	}
	tagged[ComponentField] = a.component
	return tagged
}
