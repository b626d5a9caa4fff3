package tagging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/logger"
)

type fallbackGenerator struct {
	primary Generator
	timeout time.Duration
}

// NewFallbackGenerator wraps primary so that it never fails.
// Errors, timeouts and empty answers are replaced with FallbackTags and FallbackTitles.
// A nil primary always uses the fallback.
func NewFallbackGenerator(primary Generator, timeout time.Duration) Generator {
	return &fallbackGenerator{primary: primary, timeout: timeout}
}

func (g *fallbackGenerator) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func (g *fallbackGenerator) GenerateTags(ctx context.Context, title, description string, kind domain.MediaKind) ([]string, error) {
	if g.primary != nil {
		callCtx, cancel := g.callCtx(ctx)
		defer cancel()

		tags, err := g.primary.GenerateTags(callCtx, title, description, kind)
		if err == nil {
			if tags = NormalizeTags(tags); len(tags) > 0 {
				return tags, nil
			}
		}
		logger.WarnCtx(ctx, "Tag generation degraded to fallback", zap.Error(err))
	}

	return FallbackTags(title, description, kind), nil
}

func (g *fallbackGenerator) GenerateTitles(ctx context.Context, originalTitles []string, style, mood string) ([]string, error) {
	if g.primary != nil {
		callCtx, cancel := g.callCtx(ctx)
		defer cancel()

		titles, err := g.primary.GenerateTitles(callCtx, originalTitles, style, mood)
		if err == nil {
			if titles = cleanTitles(titles); len(titles) > 0 {
				return titles, nil
			}
		}
		logger.WarnCtx(ctx, "Title generation degraded to fallback", zap.Error(err))
	}

	return FallbackTitles(originalTitles, style, mood), nil
}
