// AngelaMos | 2026
// handler.go

package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/insighthub/internal/core"
	"github.com/carterperez-dev/insighthub/internal/middleware"
)

// AccountService is the slice of the user service the profile surface
// needs: the display name lives on the account, not the profile row.
type AccountService interface {
	UpdateName(ctx context.Context, userID, name string) error
}

type Handler struct {
	service   *Service
	accounts  AccountService
	validator *validator.Validate
}

func NewHandler(service *Service, accounts AccountService) *Handler {
	return &Handler{
		service:   service,
		accounts:  accounts,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/profile", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/me", h.GetMyProfile)
		r.Put("/me", h.UpdateName)
		r.Put("/me/preferences", h.UpdatePreferences)
	})
}

// GetMyProfile returns the caller's profile. New users get defaults
// rather than a 404.
func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	p, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToProfileResponse(p))
}

// UpdateName changes the caller's display name.
func (h *Handler) UpdateName(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.accounts.UpdateName(r.Context(), userID, req.Name); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, NameResponse{Name: req.Name})
}

// UpdatePreferences partially updates the caller's UI preferences.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.UpdatePreferences(r.Context(), userID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToProfileResponse(p))
}
