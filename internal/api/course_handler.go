package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/recitelabs/recite-api/internal/api/shared"
	"github.com/recitelabs/recite-api/internal/service"
)

// CourseHandler handles course CRUD and structure analysis.
type CourseHandler struct {
	contentService *service.ContentService
	validator      *validator.Validate
}

// NewCourseHandler creates a CourseHandler.
func NewCourseHandler(contentService *service.ContentService) *CourseHandler {
	return &CourseHandler{
		contentService: contentService,
		validator:      validator.New(),
	}
}

// CreateCourse handles POST /courses.
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	course, err := h.contentService.CreateCourse(r.Context(), req.Name, req.Description)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, course)
}

// ListCourses handles GET /courses.
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.contentService.ListCourses(r.Context())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{courseID}.
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.contentService.GetCourse(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, course)
}

// DeleteCourse handles DELETE /courses/{courseID}.
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.contentService.DeleteCourse(r.Context(), chi.URLParam(r, "courseID")); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// AnalyzeStructure handles POST /courses/{courseID}/structure. The
// pasted outline is parsed and, on success, replaces the course's
// topic list; a rejected outline leaves the existing topics untouched.
func (h *CourseHandler) AnalyzeStructure(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeStructureRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	topics, err := h.contentService.AnalyzeStructure(r.Context(), chi.URLParam(r, "courseID"), req.ResponseText)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, topics)
}
