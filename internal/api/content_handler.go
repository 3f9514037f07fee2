package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/recitelabs/recite-api/internal/api/shared"
	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/service"
)

// ContentHandler handles slot reads, pasted content saves, and manual
// completion toggles.
type ContentHandler struct {
	contentService *service.ContentService
	validator      *validator.Validate
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		validator:      validator.New(),
	}
}

// pathContentType reads and validates the {contentType} path param.
func pathContentType(w http.ResponseWriter, r *http.Request) (domain.ContentType, bool) {
	contentType := domain.ContentType(chi.URLParam(r, "contentType"))
	if !domain.IsValidContentType(contentType) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unknown content type: "+string(contentType))
		return "", false
	}
	return contentType, true
}

// GetSlot handles GET /courses/{courseID}/topics/{topicID}/content/{contentType}.
func (h *ContentHandler) GetSlot(w http.ResponseWriter, r *http.Request) {
	contentType, ok := pathContentType(w, r)
	if !ok {
		return
	}
	slot, err := h.contentService.GetSlot(
		r.Context(), chi.URLParam(r, "courseID"), chi.URLParam(r, "topicID"), contentType)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	resp := SlotResponse{
		ContentType: string(contentType),
		Status:      string(slot.Status),
		Completed:   slot.Completed,
		LastUpdated: slot.LastUpdated,
		BestScore:   slot.BestScore,
		Attempts:    len(slot.Attempts),
		SRS:         slot.SRS,
	}
	if payload, err := slot.Payload(); err == nil {
		resp.Content = payload
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// SaveContent handles PUT /courses/{courseID}/topics/{topicID}/content/{contentType}.
// The body carries a pasted AI response; it flows through the same
// parser a generated response does.
func (h *ContentHandler) SaveContent(w http.ResponseWriter, r *http.Request) {
	contentType, ok := pathContentType(w, r)
	if !ok {
		return
	}
	var req SaveContentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	payload, warnings, err := h.contentService.SaveContent(
		r.Context(), chi.URLParam(r, "courseID"), chi.URLParam(r, "topicID"), contentType, req.ResponseText)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SaveContentResponse{
		SchemaVersion: string(payload.Version()),
		Warnings:      warnings,
	})
}

// SetCompleted handles PUT /courses/{courseID}/topics/{topicID}/content/{contentType}/completed.
func (h *ContentHandler) SetCompleted(w http.ResponseWriter, r *http.Request) {
	contentType, ok := pathContentType(w, r)
	if !ok {
		return
	}
	var req CompletedRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := h.contentService.SetCompleted(
		r.Context(), chi.URLParam(r, "courseID"), chi.URLParam(r, "topicID"), contentType, req.Completed)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
