package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/recitelabs/recite-api/internal/api/shared"
	"github.com/recitelabs/recite-api/internal/service"
)

// QuizHandler handles quiz reads and attempt submissions.
type QuizHandler struct {
	quizService *service.QuizService
	validator   *validator.Validate
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		validator:   validator.New(),
	}
}

// GetQuiz handles GET /courses/{courseID}/topics/{topicID}/quiz.
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	payload, slot, err := h.quizService.GetQuiz(
		r.Context(), chi.URLParam(r, "courseID"), chi.URLParam(r, "topicID"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SlotResponse{
		ContentType: "quiz",
		Status:      string(slot.Status),
		Completed:   slot.Completed,
		LastUpdated: slot.LastUpdated,
		BestScore:   slot.BestScore,
		Attempts:    len(slot.Attempts),
		Content:     payload,
	})
}

// SubmitAttempt handles POST /courses/{courseID}/topics/{topicID}/quiz/attempts.
// The client sends a complete answer sheet; unanswered questions are
// null entries and score as wrong.
func (h *QuizHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	var req SubmitQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	courseID := chi.URLParam(r, "courseID")
	topicID := chi.URLParam(r, "topicID")
	attempt, err := h.quizService.SubmitAttempt(r.Context(), courseID, topicID, req.Answers, req.TimeSpentSeconds)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	// Re-read the slot for the updated standing.
	_, slot, err := h.quizService.GetQuiz(r.Context(), courseID, topicID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, AttemptResponse{
		Score:      attempt.Score,
		Total:      attempt.Total,
		Percentage: attempt.Percentage,
		Date:       attempt.Date,
		BestScore:  slot.BestScore,
		Completed:  slot.Completed,
	})
}
