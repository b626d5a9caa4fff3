package tagging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/remixrite/remix-ledger/internal/adapter"
	"github.com/remixrite/remix-ledger/internal/domain"
)

// ChatConfig holds the settings of an OpenAI-compatible chat completions endpoint
type ChatConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ChatGenerator asks a chat completions model for tags and titles
type ChatGenerator struct {
	cfg  ChatConfig
	http adapter.HTTPClient
}

// NewChatGenerator creates a generator backed by an OpenAI-compatible endpoint such as OpenRouter
func NewChatGenerator(cfg ChatConfig, http adapter.HTTPClient) Generator {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &ChatGenerator{cfg: cfg, http: http}
}

const systemPrompt = "You are an AI curator for " + domain.PLATFORM_NAME + ", a platform for remixing audio and video clips. " +
	"Answer with a JSON array of strings only."

func (g *ChatGenerator) GenerateTags(ctx context.Context, title, description string, kind domain.MediaKind) ([]string, error) {
	prompt := fmt.Sprintf("Generate up to %d short descriptive tags for this %s content.\nTitle: %s\nDescription: %s",
		MaxTags, kind, title, description)

	tags, err := g.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tags: %w", err)
	}
	return NormalizeTags(tags), nil
}

func (g *ChatGenerator) GenerateTitles(ctx context.Context, originalTitles []string, style, mood string) ([]string, error) {
	prompt := fmt.Sprintf("Suggest %d creative titles for a remix of: %s.", MaxTitles, strings.Join(originalTitles, ", "))
	if style != "" {
		prompt += " Style: " + style + "."
	}
	if mood != "" {
		prompt += " Mood: " + mood + "."
	}

	titles, err := g.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate titles: %w", err)
	}
	return cleanTitles(titles), nil
}

func (g *ChatGenerator) complete(ctx context.Context, prompt string) ([]string, error) {
	req := chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	}

	headers := map[string]string{}
	if g.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + g.cfg.APIKey
	}

	var resp chatResponse
	if err := g.http.PostJSON(ctx, g.cfg.BaseURL+"/chat/completions", headers, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("model returned no choices")
	}

	return parseList(resp.Choices[0].Message.Content), nil
}

// parseList accepts a JSON array, optionally fenced in markdown, or a comma or newline separated list
func parseList(content string) []string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var items []string
	if err := json.Unmarshal([]byte(content), &items); err == nil {
		return items
	}

	return strings.FieldsFunc(content, func(r rune) bool {
		return r == ',' || r == '\n'
	})
}

var listMarker = regexp.MustCompile(`^\s*(?:[-*]|\d+[.)])\s+`)

func cleanTitles(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		t = strings.TrimSpace(strings.Trim(strings.TrimSpace(listMarker.ReplaceAllString(t, "")), `"`))
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) == MaxTitles {
			break
		}
	}
	return out
}
