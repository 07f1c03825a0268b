package observability

import (
	"context"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
	"go.uber.org/zap"
)

// Tracer wraps X-Ray tracing with a logger fallback for local runs.
type Tracer struct {
	serviceName string
	enabled     bool
	logger      *zap.Logger
}

// NewTracer creates a new tracer
func NewTracer(serviceName string, enabled bool, logger *zap.Logger) *Tracer {
	return &Tracer{
		serviceName: serviceName,
		enabled:     enabled,
		logger:      logger,
	}
}

// StartSegment starts a new tracing segment
func (t *Tracer) StartSegment(ctx context.Context, name string) (context.Context, func()) {
	if !t.enabled {
		return ctx, func() {}
	}

	segCtx, seg := xray.BeginSegment(ctx, fmt.Sprintf("%s.%s", t.serviceName, name))
	return segCtx, func() {
		seg.Close(nil)
	}
}

// StartSubsegment starts a subsegment within an existing segment
func (t *Tracer) StartSubsegment(ctx context.Context, name string) (context.Context, func(error)) {
	if !t.enabled {
		return ctx, func(error) {}
	}

	subCtx, sub := xray.BeginSubsegment(ctx, name)
	if sub == nil {
		return ctx, func(error) {}
	}
	return subCtx, func(err error) {
		sub.Close(err)
	}
}

// TraceFunction traces execution of a function as a subsegment
func (t *Tracer) TraceFunction(ctx context.Context, name string, fn func(context.Context) error) error {
	subCtx, done := t.StartSubsegment(ctx, name)
	err := fn(subCtx)
	done(err)
	if err != nil && t.logger != nil {
		t.logger.Debug("traced function returned error",
			zap.String("segment", name),
			zap.Error(err))
	}
	return err
}
