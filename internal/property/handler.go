// AngelaMos | 2026
// handler.go

package property

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	r.Route("/properties", func(r chi.Router) {
		r.With(optionalAuth).Get("/", h.List)
		r.Get("/{propertyID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/", h.Create)
			r.Put("/{propertyID}", h.Update)
			r.Delete("/{propertyID}", h.Delete)
			r.Post("/{propertyID}/photos", h.AddPhoto)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	caller := middleware.GetIdentity(r.Context())

	property, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.Created(w, ToPropertyResponse(property))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	property, err := h.service.Get(r.Context(), propertyID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.OK(w, ToPropertyResponse(property))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	var req UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	caller := middleware.GetIdentity(r.Context())

	property, err := h.service.Update(r.Context(), caller, propertyID, req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.OK(w, ToPropertyResponse(property))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	caller := middleware.GetIdentity(r.Context())

	if err := h.service.Delete(r.Context(), caller, propertyID); err != nil {
		h.handleError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

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

	property, err := h.service.AddPhoto(r.Context(), caller, propertyID, req.URL)
	if err != nil {
		h.handleError(w, err)
		return
	}

	core.OK(w, ToPropertyResponse(property))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListPropertiesParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
	}

	// ?mine=true narrows the listing to the caller's own properties.
	if r.URL.Query().Get("mine") == "true" {
		caller := middleware.GetIdentity(r.Context())
		if caller.IsAnonymous() {
			core.JSONError(
				w,
				core.UnauthorizedError("authentication required"),
			)
			return
		}
		params.OwnerID = caller.ID
	}

	properties, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToPropertyResponseList(properties),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "property")
	case errors.Is(err, core.ErrUnauthorized):
		core.JSONError(w, core.UnauthorizedError("authentication required"))
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "you do not own this property")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
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
