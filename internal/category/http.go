package category

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/quizzical/quizzical-api/internal/db"
	"github.com/quizzical/quizzical-api/internal/db/repository"
	httperrors "github.com/quizzical/quizzical-api/pkg/http/errors"
)

// HTTPHandler exposes REST endpoints for the category catalog.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a category HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "category_http").Logger(),
	}
}

// HandleList responds with every category.
// Route: GET /api/v3/categories
func (h *HTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context())
	if err != nil {
		h.respondStoreError(w, err, "category list failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

type saveCategoryRequest struct {
	Title  string `json:"title"`
	Active *bool  `json:"active"`
}

// HandleSave upserts a category by title.
// Route: POST /api/v3/categories
func (h *HTTPHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req saveCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Request body is not valid JSON")
		return
	}
	if req.Title == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingParameter, "Field 'title' is required")
		return
	}

	status, err := h.svc.Save(r.Context(), req.Title, req.Active)
	if err != nil {
		h.respondStoreError(w, err, "category save failed")
		return
	}

	code := http.StatusOK
	if status == repository.SaveStatusCreated {
		code = http.StatusCreated
	}
	writeJSON(w, code, map[string]any{"title": req.Title, "status": status.String()})
}

type setActiveRequest struct {
	Title  string `json:"title"`
	Active *bool  `json:"active"`
}

// HandleSetActive toggles a category's visibility flag.
// Route: PUT /api/v3/categories/active
func (h *HTTPHandler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Request body is not valid JSON")
		return
	}
	if req.Title == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingParameter, "Field 'title' is required")
		return
	}
	if req.Active == nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingParameter, "Field 'active' is required")
		return
	}

	changed, err := h.svc.SetActive(r.Context(), req.Title, *req.Active)
	if err != nil {
		h.respondStoreError(w, err, "category visibility change failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"changed": changed})
}

func (h *HTTPHandler) respondStoreError(w http.ResponseWriter, err error, msg string) {
	h.logger.Error().Err(err).Msg(msg)
	if db.IsKind(err, db.KindConnection) {
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeServiceUnavailable, "Storage is unavailable")
		return
	}
	httperrors.RespondInternalError(w, "Something went wrong")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
