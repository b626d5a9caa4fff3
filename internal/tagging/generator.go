package tagging

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/remixrite/remix-ledger/internal/domain"
)

const (
	// MaxTags caps the number of tags kept from any generator
	MaxTags = 10
	// MaxTitles caps the number of title suggestions kept from any generator
	MaxTitles = 5
)

// Generator produces descriptive tags and title suggestions
//
//go:generate mockgen -source=generator.go -destination=../mocks/tagging.go -package=mocks -mock_names=Generator=MockTagGenerator
type Generator interface {
	// GenerateTags returns descriptive tags for a piece of content
	GenerateTags(ctx context.Context, title, description string, kind domain.MediaKind) ([]string, error)
	// GenerateTitles returns title suggestions for a remix of originalTitles
	GenerateTitles(ctx context.Context, originalTitles []string, style, mood string) ([]string, error)
}

// FallbackTags derives tags from the content itself
func FallbackTags(title, description string, kind domain.MediaKind) []string {
	tags := []string{}
	if kind.Valid() {
		tags = append(tags, string(kind))
	}

	for _, word := range strings.FieldsFunc(title+" "+description, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(word)) < 4 {
			continue
		}
		tags = append(tags, word)
	}

	tags = append(tags, "remix", strings.ToLower(domain.PLATFORM_NAME))
	return NormalizeTags(tags)
}

// FallbackTitles builds a title from the first original title
func FallbackTitles(originalTitles []string, style, mood string) []string {
	first := "Untitled"
	for _, t := range originalTitles {
		if t = strings.TrimSpace(t); t != "" {
			first = t
			break
		}
	}

	titles := []string{fmt.Sprintf("Remix of %s", first)}

	prefix := strings.TrimSpace(strings.Join([]string{strings.TrimSpace(mood), strings.TrimSpace(style)}, " "))
	if prefix != "" {
		titles = append(titles, fmt.Sprintf("%s Remix of %s", prefix, first))
	}
	return titles
}

// NormalizeTags lowercases, trims and deduplicates tags, keeping at most MaxTags
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.Trim(strings.TrimSpace(tag), `"'#.`))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}
