// Package trace starts the optional Datadog tracer. Tracing is only
// enabled when MOMENTSENS_TRACE=1; otherwise every span is a no-op.
package trace

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

var (
	globalDDTraceID string
	globalDDSpanID  string
)

// MaybeTrace starts the tracer if MOMENTSENS_TRACE=1. A parent span
// can be passed in DD_TRACE_ID and DD_SPAN_ID (hex encoded); those
// variables are consumed so that child processes don't inherit them.
// The caller must call Stop if MaybeTrace returns true.
func MaybeTrace(serviceVersion string) bool {
	if os.Getenv("MOMENTSENS_TRACE") != "1" {
		return false
	}

	globalDDTraceID = os.Getenv("DD_TRACE_ID")
	globalDDSpanID = os.Getenv("DD_SPAN_ID")
	os.Unsetenv("DD_TRACE_ID")
	os.Unsetenv("DD_SPAN_ID")

	tracer.Start(
		tracer.WithService("momentsens"),
		tracer.WithServiceVersion(serviceVersion),
	)
	return true
}

// Stop flushes and stops the tracer.
func Stop() {
	tracer.Stop()
}

// StartSpanFromExistingContext starts the root span of a command,
// as a child of the span passed in the environment if there is one.
func StartSpanFromExistingContext(name string) (ddtrace.Span, context.Context) {
	ctx := context.Background()
	parent, err := parentContext(globalDDTraceID, globalDDSpanID)
	if err != nil || parent == nil {
		return tracer.StartSpanFromContext(ctx, name)
	}
	return tracer.StartSpanFromContext(ctx, name, tracer.ChildOf(parent))
}

func parentContext(traceID, spanID string) (ddtrace.SpanContext, error) {
	if traceID == "" || spanID == "" {
		return nil, nil
	}
	tid, err := parseHexID(traceID)
	if err != nil {
		return nil, err
	}
	sid, err := parseHexID(spanID)
	if err != nil {
		return nil, err
	}
	return tracer.Extract(tracer.TextMapCarrier{
		tracer.DefaultTraceIDHeader:  strconv.FormatUint(tid, 10),
		tracer.DefaultParentIDHeader: strconv.FormatUint(sid, 10),
	})
}

// parseHexID parses a hex span or trace id. 128-bit trace ids are
// reduced to their lower 64 bits, which is what the Datadog headers
// carry.
func parseHexID(v string) (uint64, error) {
	if len(v) > 16 {
		v = v[len(v)-16:]
	}
	id, err := strconv.ParseUint(v, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed id %q: %w", v, err)
	}
	return id, nil
}
