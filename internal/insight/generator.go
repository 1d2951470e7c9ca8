// AngelaMos | 2026
// generator.go

package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/carterperez-dev/insighthub/internal/config"
)

// ErrMissingAPIKey marks generation attempts made without a Gemini
// credential. Tip suggestions degrade to fallback copy instead.
var ErrMissingAPIKey = errors.New("gemini api key not configured")

// Fallback copy when the model answers with an empty body or the tip
// call fails outright.
const (
	EmptyInsightFallback = "No insights generated."
	TipFallback          = "Always cross-reference AI data with primary sources."
)

const tipPrompt = "Give me one insightful market research tip " +
	"for a professional dashboard in 1 sentence."

// taskPrompts map research categories to the opening task line of the
// generation prompt. Unknown categories get a generic task.
var taskPrompts = map[string]string{
	"product_research":         "Perform an in-depth product research.",
	"market_analysis":          "Analyze market intelligence and trends.",
	"sentiment_analysis":       "Analyze user sentiment distribution.",
	"competitive_intelligence": "Conduct competitive intelligence analysis.",
	"pricing_intelligence":     "Research pricing intelligence and tiers.",
}

// Generator produces markdown research insights through the Gemini
// API. A heavier model handles research runs; a fast one serves the
// dashboard tip.
type Generator struct {
	client        *genai.Client
	researchModel string
	tipModel      string
	temperature   float32
	topP          float32
}

// NewGenerator builds the Gemini-backed generator. A missing API key
// is not a constructor error: the tip path still serves its fallback,
// and Generate reports ErrMissingAPIKey per call.
func NewGenerator(
	ctx context.Context,
	cfg config.GeminiConfig,
) (*Generator, error) {
	g := &Generator{
		researchModel: cfg.ResearchModel,
		tipModel:      cfg.TipModel,
		temperature:   float32(cfg.Temperature),
		topP:          float32(cfg.TopP),
	}

	if cfg.APIKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client

	return g, nil
}

// Generate runs a research prompt for the given category and query.
// webContext, when non-empty, is injected as live crawled data;
// otherwise the model is told to rely on internal knowledge.
func (g *Generator) Generate(
	ctx context.Context,
	category, query, webContext string,
) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("generate insight: %w", ErrMissingAPIKey)
	}

	prompt := buildPrompt(category, query, webContext)

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.researchModel,
		[]*genai.Content{
			genai.NewContentFromText(prompt, genai.RoleUser),
		},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(g.temperature),
			TopP:        genai.Ptr(g.topP),
		},
	)
	if err != nil {
		return "", fmt.Errorf("generate insight: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return EmptyInsightFallback, nil
	}

	return text, nil
}

// SuggestTip returns a one-line research tip for the dashboard. Tips
// are decoration, so any failure degrades to static fallback copy.
func (g *Generator) SuggestTip(ctx context.Context) string {
	if g.client == nil {
		return TipFallback
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.tipModel,
		[]*genai.Content{
			genai.NewContentFromText(tipPrompt, genai.RoleUser),
		},
		nil,
	)
	if err != nil {
		return TipFallback
	}

	if text := responseText(resp); text != "" {
		return text
	}

	return "Keep data fresh for better decisions."
}

func buildPrompt(category, query, webContext string) string {
	task, ok := taskPrompts[category]
	if !ok {
		task = "Research task"
	}

	contextInstruction := "Rely on your internal knowledge base."
	if webContext != "" {
		contextInstruction = "Below is live data crawled from the web " +
			"to help you answer with the most up-to-date information:\n\n" +
			webContext
	}

	return fmt.Sprintf(`Task: %s for %q.

%s

Requirements:
1. Provide an Executive Summary.
2. Analyze Signal vs Noise.
3. List Key Features/Insights.
4. Compare with competitors/alternatives if applicable.
5. Format as clear Markdown with headers.
6. If web data was provided, cite the sources used.`,
		task, query, contextInstruction)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		sb.WriteString(part.Text)
	}

	return strings.TrimSpace(sb.String())
}
