package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/okian/xgflow/internal/adapters/matchfile"
	"github.com/okian/xgflow/internal/adapters/repository"
	"github.com/okian/xgflow/internal/domain/assemble"
)

const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

// TimelinesHandler handles match assembly requests.
type TimelinesHandler struct {
	deps         Dependencies
	maxBodyBytes int64
}

// NewTimelinesHandler creates a new timelines handler.
func NewTimelinesHandler(deps Dependencies, maxBodyBytes int64) *TimelinesHandler {
	return &TimelinesHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

type timelineResponse struct {
	RequestID string `json:"request_id"`
	matchfile.Document
}

// HandlePostTimeline handles POST /api/v1/timelines requests.
func (h *TimelinesHandler) HandlePostTimeline(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_timeline"

	f, err := matchfile.Decode(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", WrapKind(op, ErrPayloadTooLarge, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	doc, err := h.deps.Document(r.Context(), f)
	if err != nil {
		if errors.Is(err, assemble.ErrInvalidMatch) {
			writeError(w, http.StatusUnprocessableEntity, "invalid_match", WrapKind(op, ErrInvalidMatch, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}

	requestID := chimiddleware.GetReqID(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}
	writeJSON(w, http.StatusOK, timelineResponse{RequestID: requestID, Document: doc})
}

// HandleGetTimeline handles GET /api/v1/timelines/{matchID} requests.
func (h *TimelinesHandler) HandleGetTimeline(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_timeline"

	doc, err := h.deps.Timeline(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// HandleListTimelines handles GET /api/v1/timelines?limit=N requests.
func (h *TimelinesHandler) HandleListTimelines(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_timelines"

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxListLimit {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	list, err := h.deps.Timelines(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, list)
}
