// AngelaMos | 2026
// dto.go

package research

import "time"

type RunRequest struct {
	Query    string `json:"query"    validate:"required,min=2,max=2000"`
	Category string `json:"category"`
}

type SaveRequest struct {
	Saved bool `json:"saved"`
}

type RecordResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Query     string    `json:"query"`
	Category  Category  `json:"category"`
	Content   string    `json:"content"`
	IsSaved   bool      `json:"is_saved"`
	CreatedAt time.Time `json:"created_at"`
}

// RunResponse is the outcome of a research run. Warning is set when
// the insight was produced but a bookkeeping step failed; credits is
// omitted rather than guessed when the stored balance is unreadable.
type RunResponse struct {
	Insight  string          `json:"insight"`
	Research *RecordResponse `json:"research,omitempty"`
	Credits  *int            `json:"credits,omitempty"`
	Warning  string          `json:"warning,omitempty"`
}

type TipResponse struct {
	Tip string `json:"tip"`
}

type ListParams struct {
	Page      int
	PageSize  int
	Category  string
	SavedOnly bool
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToRecordResponse(r *Record) *RecordResponse {
	return &RecordResponse{
		ID:        r.ID,
		Title:     r.Title,
		Query:     r.Query,
		Category:  r.Category,
		Content:   r.Content,
		IsSaved:   r.IsSaved,
		CreatedAt: r.CreatedAt,
	}
}

func ToRecordResponseList(records []Record) []RecordResponse {
	out := make([]RecordResponse, len(records))
	for i := range records {
		out[i] = *ToRecordResponse(&records[i])
	}
	return out
}
