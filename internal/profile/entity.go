// AngelaMos | 2026
// entity.go

package profile

import "time"

// Profile holds the per-user research account: the credit balance,
// premium flag, UI preferences, and usage counters. Exactly one row
// per user; a missing row is served as defaults until first write.
type Profile struct {
	UserID          string    `db:"user_id"`
	Credits         int       `db:"credits"`
	IsPremium       bool      `db:"is_premium"`
	Theme           string    `db:"theme"`
	Notifications   bool      `db:"notifications"`
	TotalResearches int       `db:"total_researches"`
	SavedReports    int       `db:"saved_reports"`
	ActiveProjects  int       `db:"active_projects"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)
