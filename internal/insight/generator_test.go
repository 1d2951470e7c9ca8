// AngelaMos | 2026
// generator_test.go

package insight

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/carterperez-dev/insighthub/internal/config"
)

func TestNewGeneratorWithoutAPIKey(t *testing.T) {
	gen, err := NewGenerator(context.Background(), config.GeminiConfig{
		ResearchModel: "gemini-3-pro-preview",
		TipModel:      "gemini-3-flash-preview",
		Temperature:   0.7,
		TopP:          0.95,
		Timeout:       time.Minute,
	})
	require.NoError(t, err)

	// Generation needs the credential and says so per call.
	_, err = gen.Generate(context.Background(), "product_research", "q", "")
	require.ErrorIs(t, err, ErrMissingAPIKey)

	// Tips are decorative and must keep working without it.
	assert.Equal(t, TipFallback, gen.SuggestTip(context.Background()))
}

func TestBuildPromptWithWebContext(t *testing.T) {
	prompt := buildPrompt(
		"market_analysis",
		"renewable energy trends",
		"Source: https://a\nTitle: A\nContent: alpha",
	)

	assert.Contains(t, prompt, "Analyze market intelligence and trends.")
	assert.Contains(t, prompt, `"renewable energy trends"`)
	assert.Contains(t, prompt, "live data crawled from the web")
	assert.Contains(t, prompt, "Source: https://a")
	assert.Contains(t, prompt, "Provide an Executive Summary.")
	assert.Contains(t, prompt, "cite the sources used")
	assert.NotContains(t, prompt, "internal knowledge base")
}

func TestBuildPromptWithoutWebContext(t *testing.T) {
	prompt := buildPrompt("sentiment_analysis", "iphone launch", "")

	assert.Contains(t, prompt, "Analyze user sentiment distribution.")
	assert.Contains(t, prompt, "Rely on your internal knowledge base.")
	assert.NotContains(t, prompt, "live data crawled")
}

func TestBuildPromptUnknownCategory(t *testing.T) {
	prompt := buildPrompt("astrology", "mars retrograde", "")

	assert.True(t, strings.HasPrefix(prompt, `Task: Research task for`))
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "# Insight\n"},
						{Text: "body"},
					},
				},
			},
		},
	}

	assert.Equal(t, "# Insight\nbody", responseText(resp))
}

func TestResponseTextEmpty(t *testing.T) {
	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{}},
	}))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "  \n"}}}},
		},
	}))
}

func TestBuildPromptTaskPerCategory(t *testing.T) {
	tests := []struct {
		category string
		task     string
	}{
		{"product_research", "Perform an in-depth product research."},
		{"market_analysis", "Analyze market intelligence and trends."},
		{"sentiment_analysis", "Analyze user sentiment distribution."},
		{"competitive_intelligence", "Conduct competitive intelligence analysis."},
		{"pricing_intelligence", "Research pricing intelligence and tiers."},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Contains(t, buildPrompt(tt.category, "q", ""), tt.task)
		})
	}
}
