// SPDX-License-Identifier: MIT

// Package log provides structured logging utilities.
package log

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const (
	requestIDKey  ctxKey = "request_id"
	revisionIDKey ctxKey = "revision_id"
	sourceKey     ctxKey = "source"
)

// ContextWithRequestID stores the provided request ID in the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithRevisionID stores the provided revision ID in the context.
func ContextWithRevisionID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, revisionIDKey, id)
}

// ContextWithSource records which trigger (boot, watch, signal, api) started
// the operation carried by the context.
func ContextWithSource(ctx context.Context, source string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sourceKey, source)
}

// RequestIDFromContext extracts the request ID from context if present.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// RevisionIDFromContext extracts the revision ID from context if present.
func RevisionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(revisionIDKey).(string); ok {
		return v
	}
	return ""
}

// SourceFromContext extracts the trigger source from context if present.
func SourceFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(sourceKey).(string); ok {
		return v
	}
	return ""
}

// WithContext enriches the supplied logger with correlation fields from context.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return logger
	}
	builder := logger.With()
	added := false
	if rid := RequestIDFromContext(ctx); rid != "" {
		builder = builder.Str(FieldRequestID, rid)
		added = true
	}
	if rev := RevisionIDFromContext(ctx); rev != "" {
		builder = builder.Str(FieldRevisionID, rev)
		added = true
	}
	if src := SourceFromContext(ctx); src != "" {
		builder = builder.Str(FieldSource, src)
		added = true
	}
	if !added {
		return logger
	}
	return builder.Logger()
}

// WithComponentFromContext returns a logger that is annotated with the component
// name and enriched with correlation fields from ctx.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	l := FromContext(ctx)
	return WithContext(ctx, l.With().Str(FieldComponent, component).Logger())
}

// WithTraceContext returns the base logger enriched with trace_id and span_id
// when ctx carries a valid, sampled span. Correlation fields from ctx are
// applied as well.
func WithTraceContext(ctx context.Context) zerolog.Logger {
	l := WithContext(ctx, Base())
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return l
	}
	return l.With().
		Str("trace_id", spanCtx.TraceID().String()).
		Str("span_id", spanCtx.SpanID().String()).
		Logger()
}

// FromContext returns a logger from the context, or the base logger if not present.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := Base()
		return &l
	}
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		// If no logger is in the context, return the base logger.
		b := Base()
		return &b
	}
	return l
}
