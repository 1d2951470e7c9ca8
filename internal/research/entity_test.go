// AngelaMos | 2026
// entity_test.go

package research

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "short query unchanged",
			query: "compare CRM tools",
			want:  "compare CRM tools",
		},
		{
			name:  "exactly fifty characters unchanged",
			query: strings.Repeat("a", 50),
			want:  strings.Repeat("a", 50),
		},
		{
			name:  "long query truncated with ellipsis",
			query: strings.Repeat("b", 80),
			want:  strings.Repeat("b", 50) + "...",
		},
		{
			name:  "multibyte runes counted as characters",
			query: strings.Repeat("é", 60),
			want:  strings.Repeat("é", 50) + "...",
		},
		{
			name:  "empty query stays empty",
			query: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.query))
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{"product_research", CategoryProduct},
		{"market_analysis", CategoryMarket},
		{"sentiment_analysis", CategorySentiment},
		{"competitive_intelligence", CategoryCompetitive},
		{"pricing_intelligence", CategoryPricing},
		{"", CategoryProduct},
		{"astrology", CategoryProduct},
		{"PRODUCT_RESEARCH", CategoryProduct},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.input))
		})
	}
}

func TestListParamsNormalize(t *testing.T) {
	p := ListParams{Page: -1, PageSize: 500}
	p.Normalize()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = ListParams{Page: 3, PageSize: 20}
	p.Normalize()
	assert.Equal(t, 40, p.Offset())
}
