package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/recitelabs/recite-api/internal/api/shared"
	"github.com/recitelabs/recite-api/internal/domain/srs"
	"github.com/recitelabs/recite-api/internal/service"
)

// ReviewHandler handles flashcard review sessions.
type ReviewHandler struct {
	reviewService *service.ReviewService
	validator     *validator.Validate
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// StartSession handles POST /review/sessions.
func (h *ReviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	state, err := h.reviewService.StartSession(r.Context(), req.CourseID, req.TopicID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, state)
}

// GetSession handles GET /review/sessions/{sessionID}.
func (h *ReviewHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.reviewService.Session(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// Grade handles POST /review/sessions/{sessionID}/grade.
func (h *ReviewHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	state, err := h.reviewService.Grade(r.Context(), chi.URLParam(r, "sessionID"), srs.Grade(req.Grade))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// EndSession handles DELETE /review/sessions/{sessionID}.
func (h *ReviewHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.reviewService.EndSession(chi.URLParam(r, "sessionID")); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
