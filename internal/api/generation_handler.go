package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/recitelabs/recite-api/internal/api/shared"
	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/generation"
	"github.com/recitelabs/recite-api/internal/service"
	"github.com/recitelabs/recite-api/internal/task"
)

// GenerationHandler queues background generation tasks and reports
// their status. With no generator configured the endpoints report the
// feature disabled; pasted responses keep working.
type GenerationHandler struct {
	contentService *service.ContentService
	generator      generation.Generator
	structureGen   generation.StructureGenerator
	runner         *task.Runner
	validator      *validator.Validate
}

// NewGenerationHandler creates a GenerationHandler. generator and
// structureGen may be nil when generation is not configured.
func NewGenerationHandler(
	contentService *service.ContentService,
	generator generation.Generator,
	structureGen generation.StructureGenerator,
	runner *task.Runner,
) *GenerationHandler {
	return &GenerationHandler{
		contentService: contentService,
		generator:      generator,
		structureGen:   structureGen,
		runner:         runner,
		validator:      validator.New(),
	}
}

// GenerateContent handles POST /courses/{courseID}/topics/{topicID}/generate.
func (h *GenerationHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	contentType := domain.ContentType(req.ContentType)
	if !domain.IsValidContentType(contentType) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unknown content type: "+req.ContentType)
		return
	}
	if h.generator == nil {
		respondWithMappedError(w, r, generation.ErrDisabled)
		return
	}

	courseID := chi.URLParam(r, "courseID")
	topicID := chi.URLParam(r, "topicID")

	// Resolve the slot now so a bad ID fails the request, not the task.
	if _, err := h.contentService.GetSlot(r.Context(), courseID, topicID, contentType); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	genTask, err := task.NewContentGenerationTask(courseID, topicID, contentType, h.generator, h.contentService)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := h.runner.Submit(genTask); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskResponse{TaskID: genTask.ID().String()})
}

// GenerateStructure handles POST /courses/{courseID}/structure/generate.
func (h *GenerationHandler) GenerateStructure(w http.ResponseWriter, r *http.Request) {
	if h.structureGen == nil {
		respondWithMappedError(w, r, generation.ErrDisabled)
		return
	}

	courseID := chi.URLParam(r, "courseID")
	course, err := h.contentService.GetCourse(r.Context(), courseID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	structTask, err := task.NewStructureAnalysisTask(
		courseID, course.Name, course.Description, h.structureGen, h.contentService)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := h.runner.Submit(structTask); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskResponse{TaskID: structTask.ID().String()})
}

// TaskStatus handles GET /tasks/{taskID}.
func (h *GenerationHandler) TaskStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}
	snapshot, err := h.runner.Status(id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, snapshot)
}
