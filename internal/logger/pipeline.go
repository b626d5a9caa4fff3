package logger

import (
	"context"

	"go.uber.org/zap"
)

type pipelineInfoKey struct{}

// PipelineInfo identifies the request a log line belongs to
type PipelineInfo struct {
	RequestID string
	CreatorID string
	Operation string
}

// Fields returns the zap fields describing the pipeline
func (p *PipelineInfo) Fields() []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if p.RequestID != "" {
		fields = append(fields, zap.String("request_id", p.RequestID))
	}
	if p.CreatorID != "" {
		fields = append(fields, zap.String("creator_id", p.CreatorID))
	}
	if p.Operation != "" {
		fields = append(fields, zap.String("operation", p.Operation))
	}
	return fields
}

// WithPipelineInfo returns a context that makes FromContext attach the pipeline fields
func WithPipelineInfo(ctx context.Context, info PipelineInfo) context.Context {
	return context.WithValue(ctx, pipelineInfoKey{}, &info)
}

// PipelineInfoFromContext returns the pipeline info stored in ctx, or nil
func PipelineInfoFromContext(ctx context.Context) *PipelineInfo {
	if ctx == nil {
		return nil
	}
	info, _ := ctx.Value(pipelineInfoKey{}).(*PipelineInfo)
	return info
}
