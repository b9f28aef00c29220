// Package writer turns an assembled directive into an article draft.
package writer

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/admissions-geo/internal/config"
	"github.com/sells-group/admissions-geo/internal/prompt"
	"github.com/sells-group/admissions-geo/pkg/anthropic"
)

const defaultMaxTokens = 2048

// Draft is a generated article with its token usage.
type Draft struct {
	Text    string
	Model   string
	Usage   anthropic.TokenUsage
	CostUSD float64
}

// Writer sends directives to the model.
type Writer struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// New creates a Writer over client using the configured model.
func New(client anthropic.Client, cfg config.AnthropicConfig) *Writer {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Writer{client: client, model: cfg.Model, maxTokens: maxTokens}
}

// Write generates a draft for keyword from directive.
func (w *Writer) Write(ctx context.Context, keyword, directive string) (*Draft, error) {
	if strings.TrimSpace(directive) == "" {
		return nil, eris.New("writer: empty directive")
	}

	resp, err := w.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     w.model,
		MaxTokens: w.maxTokens,
		System:    anthropic.CachedSystem(prompt.System),
		Messages:  []anthropic.Message{{Role: "user", Content: directive}},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "writer: draft %q", keyword)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, eris.Errorf("writer: empty draft for %q (stop reason %s)", keyword, resp.StopReason)
	}

	resp.Usage.LogCost(w.model, keyword)
	return &Draft{
		Text:    text,
		Model:   resp.Model,
		Usage:   resp.Usage,
		CostUSD: resp.Usage.EstimateCost(w.model),
	}, nil
}
