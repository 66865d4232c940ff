package question

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/quizzical/quizzical-api/internal/db"
	httperrors "github.com/quizzical/quizzical-api/pkg/http/errors"
)

const (
	defaultPage = 1
	defaultSize = 10
)

// HTTPHandler exposes REST endpoints for the question catalog.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a question HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// HandleList responds with one page of a category's questions.
// Route: GET /api/v3/questions?category=Science&page=1&size=10
func (h *HTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingParameter, "Query parameter 'category' is required")
		return
	}

	page := queryInt(r, "page", defaultPage)
	size := queryInt(r, "size", defaultSize)

	result, err := h.svc.List(r.Context(), category, page, size)
	if err != nil {
		h.respondStoreError(w, err, "question list failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleCreate stores a new question with its choices.
// Route: POST /api/v3/questions
func (h *HTTPHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req NewQuestion
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Request body is not valid JSON")
		return
	}

	saved, err := h.svc.Save(r.Context(), req)
	if err != nil {
		var verr ValidationError
		if errors.As(err, &verr) {
			httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, verr.Message, verr.Field)
			return
		}
		h.respondStoreError(w, err, "question create failed")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// queryInt reads a positive integer query parameter, falling back to def
// when the parameter is absent or unparsable.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return parsed
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
