// AngelaMos | 2026
// dto.go

package profile

type UpdateNameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type NameResponse struct {
	Name string `json:"name"`
}

type UpdatePreferencesRequest struct {
	Theme         *string `json:"theme"          validate:"omitempty,oneof=dark light"`
	Notifications *bool   `json:"notifications"`
}

type PreferencesResponse struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

type StatsResponse struct {
	TotalResearches int `json:"total_researches"`
	SavedReports    int `json:"saved_reports"`
	ActiveProjects  int `json:"active_projects"`
}

type ProfileResponse struct {
	UserID      string              `json:"user_id"`
	Credits     int                 `json:"credits"`
	IsPremium   bool                `json:"is_premium"`
	Preferences PreferencesResponse `json:"preferences"`
	Stats       StatsResponse       `json:"stats"`
}

func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		UserID:    p.UserID,
		Credits:   p.Credits,
		IsPremium: p.IsPremium,
		Preferences: PreferencesResponse{
			Theme:         p.Theme,
			Notifications: p.Notifications,
		},
		Stats: StatsResponse{
			TotalResearches: p.TotalResearches,
			SavedReports:    p.SavedReports,
			ActiveProjects:  p.ActiveProjects,
		},
	}
}
