// AngelaMos | 2026
// entity.go

package research

import "time"

// Category names a research discipline the generation prompt is tuned
// for. Unknown values fall back to product research rather than fail.
type Category string

const (
	CategoryProduct     Category = "product_research"
	CategoryMarket      Category = "market_analysis"
	CategorySentiment   Category = "sentiment_analysis"
	CategoryCompetitive Category = "competitive_intelligence"
	CategoryPricing     Category = "pricing_intelligence"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryProduct, CategoryMarket, CategorySentiment,
		CategoryCompetitive, CategoryPricing:
		return true
	}
	return false
}

func ParseCategory(s string) Category {
	c := Category(s)
	if !c.Valid() {
		return CategoryProduct
	}
	return c
}

// Record is one completed research run in the user's history.
type Record struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Query     string    `db:"query"`
	Category  Category  `db:"category"`
	Content   string    `db:"content"`
	IsSaved   bool      `db:"is_saved"`
	CreatedAt time.Time `db:"created_at"`
}

const titleLimit = 50

// DeriveTitle shortens a query into a history title, truncating at 50
// characters with an ellipsis marker.
func DeriveTitle(query string) string {
	runes := []rune(query)
	if len(runes) <= titleLimit {
		return query
	}

	return string(runes[:titleLimit]) + "..."
}
