// AngelaMos | 2026
// handler.go

package workspace

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/workhaven/internal/core"
	"github.com/angelamos/workhaven/internal/middleware"
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
	authenticator, optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/workspaces", func(r chi.Router) {
		r.With(optionalAuth).Get("/", h.Discover)
		r.Get("/{workspaceID}", h.Get)
		r.Get("/{workspaceID}/reviews", h.ListReviews)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/", h.Create)
			r.Put("/{workspaceID}", h.Update)
			r.Delete("/{workspaceID}", h.Delete)
			r.Post("/{workspaceID}/photos", h.AddPhoto)
			r.Post("/{workspaceID}/ratings", h.Rate)
			r.Post("/{workspaceID}/reviews", h.Review)
		})
	})
}

// Discover is the public marketplace query. Every filter narrows the result
// set; absent parameters do not constrain.
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	query, err := parseDiscoveryQuery(r.URL.Query())
	if err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	// ?mine=true narrows to the caller's own listings.
	if r.URL.Query().Get("mine") == "true" {
		caller := middleware.GetIdentity(r.Context())
		if caller.IsAnonymous() {
			core.JSONError(
				w,
				core.UnauthorizedError("authentication required"),
			)
			return
		}
		query.Workspace.OwnerID = caller.ID
	}

	results, err := h.service.Discover(r.Context(), query)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, results)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")

	workspace, err := h.service.Get(r.Context(), workspaceID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.OK(w, workspace)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	caller := middleware.GetIdentity(r.Context())

	workspace, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.Created(w, ToWorkspaceResponse(workspace))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")

	var req UpdateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	caller := middleware.GetIdentity(r.Context())

	workspace, err := h.service.Update(r.Context(), caller, workspaceID, req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.OK(w, ToWorkspaceResponse(workspace))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")
	caller := middleware.GetIdentity(r.Context())

	if err := h.service.Delete(r.Context(), caller, workspaceID); err != nil {
		h.handleError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")

	var req AddPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	caller := middleware.GetIdentity(r.Context())

	workspace, err := h.service.AddPhoto(
		r.Context(),
		caller,
		workspaceID,
		req.URL,
	)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.OK(w, ToWorkspaceResponse(workspace))
}

func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")
	raterID := middleware.GetUserID(r.Context())

	var req RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	summary, err := h.service.Rate(r.Context(), raterID, workspaceID, req.Value)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.OKMessage(w, "rating saved", summary)
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")
	authorID := middleware.GetUserID(r.Context())

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	review, err := h.service.Review(r.Context(), authorID, workspaceID, req.Body)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.Created(w, ToReviewResponse(review))
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")

	reviews, err := h.service.ListReviews(r.Context(), workspaceID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.OK(w, ToReviewResponseList(reviews))
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "workspace")
	case errors.Is(err, core.ErrUnauthorized):
		core.JSONError(w, core.UnauthorizedError("authentication required"))
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "you do not own this listing")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}

func parseDiscoveryQuery(values url.Values) (DiscoveryQuery, error) {
	var query DiscoveryQuery

	query.Workspace.Type = values.Get("type")
	query.Workspace.Term = values.Get("term")
	query.Property.Address = values.Get("address")
	query.Property.Neighborhood = values.Get("neighborhood")

	if v := values.Get("min_seats"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return query, errors.New("min_seats must be a non-negative integer")
		}
		query.Workspace.MinSeats = n
	}

	if v := values.Get("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return query, errors.New("max_price must be a non-negative number")
		}
		query.Workspace.MaxPrice = f
	}

	if v := values.Get("smoking"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return query, errors.New("smoking must be true or false")
		}
		query.Workspace.Smoking = &b
	}

	if v := values.Get("available_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return query, errors.New("available_from must be YYYY-MM-DD")
		}
		query.Workspace.AvailableFrom = &t
	}

	if v := values.Get("min_sqft"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return query, errors.New("min_sqft must be a non-negative integer")
		}
		query.Property.MinSqft = n
	}

	if v := values.Get("parking"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return query, errors.New("parking must be true or false")
		}
		query.Property.Parking = &b
	}

	if v := values.Get("transit"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return query, errors.New("transit must be true or false")
		}
		query.Property.Transit = &b
	}

	if query.Workspace.Type != "" && !ValidType(query.Workspace.Type) {
		return query, errors.New("type must be one of: desk, office, meeting, event")
	}

	if query.Workspace.Term != "" && !ValidTerm(query.Workspace.Term) {
		return query, errors.New("term must be one of: hour, day, week, month")
	}

	query.Sort = ParseSort(values.Get("sort"))

	return query, nil
}
