// AngelaMos | 2026
// handler.go

package research

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/insighthub/internal/core"
	"github.com/carterperez-dev/insighthub/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/research", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.RunResearch)
		r.Get("/", h.ListResearches)
		r.Get("/tip", h.GetTip)
		r.Get("/{researchID}", h.GetResearch)
		r.Put("/{researchID}/save", h.SetSaved)
		r.Delete("/{researchID}", h.DeleteResearch)
	})
}

// RunResearch executes the full pipeline for the caller's query. A
// 402 means the balance could not cover the run; a 502 means the AI
// engine failed and nothing was charged.
func (h *Handler) RunResearch(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.Run(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInsufficientCredits):
			core.JSONError(w, core.NewAppError(
				err,
				"Insufficient credits. Please upgrade your plan or wait for renewal.",
				http.StatusPaymentRequired,
				"INSUFFICIENT_CREDITS",
			))
		case errors.Is(err, ErrGeneration):
			core.JSONError(w, core.NewAppError(
				err,
				"Failed to connect to AI engine.",
				http.StatusBadGateway,
				"GENERATION_FAILED",
			))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	resp := RunResponse{
		Insight: result.Insight,
		Credits: result.Credits,
		Warning: result.Warning,
	}
	if result.Record != nil {
		resp.Research = ToRecordResponse(result.Record)
	}

	core.OK(w, resp)
}

// ListResearches returns the caller's research history, newest first.
func (h *Handler) ListResearches(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	params := ListParams{
		Page:      parseIntQuery(r, "page", 1),
		PageSize:  parseIntQuery(r, "page_size", 20),
		Category:  r.URL.Query().Get("category"),
		SavedOnly: r.URL.Query().Get("saved") == "true",
	}

	records, total, err := h.service.ListResearches(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToRecordResponseList(records),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) GetResearch(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	researchID := chi.URLParam(r, "researchID")

	record, err := h.service.GetResearch(r.Context(), userID, researchID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "research")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRecordResponse(record))
}

func (h *Handler) SetSaved(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	researchID := chi.URLParam(r, "researchID")

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	record, err := h.service.SetSaved(r.Context(), userID, researchID, req.Saved)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "research")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRecordResponse(record))
}

func (h *Handler) DeleteResearch(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	researchID := chi.URLParam(r, "researchID")

	err := h.service.DeleteResearch(r.Context(), userID, researchID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "research")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

// GetTip serves the dashboard's one-line research tip.
func (h *Handler) GetTip(w http.ResponseWriter, r *http.Request) {
	core.OK(w, TipResponse{Tip: h.service.Tip(r.Context())})
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
