package api

import (
	"net/http"

	"github.com/recitelabs/recite-api/internal/api/shared"
	"github.com/recitelabs/recite-api/internal/service"
)

// StudyHandler exposes the cross-course study queue.
type StudyHandler struct {
	studyService *service.StudyService
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(studyService *service.StudyService) *StudyHandler {
	return &StudyHandler{studyService: studyService}
}

// GetQueue handles GET /study/queue.
func (h *StudyHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := h.studyService.Queue(r.Context())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, queue)
}
