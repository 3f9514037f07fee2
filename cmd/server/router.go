package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/recitelabs/recite-api/internal/api"
	apiMiddleware "github.com/recitelabs/recite-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	authHandler := api.NewAuthHandler(app.config.Auth, app.jwtService, app.passwordVerifier)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	courseHandler := api.NewCourseHandler(app.contentService)
	contentHandler := api.NewContentHandler(app.contentService)
	generationHandler := api.NewGenerationHandler(
		app.contentService, app.generator, app.structureGen, app.runner)
	quizHandler := api.NewQuizHandler(app.quizService)
	reviewHandler := api.NewReviewHandler(app.reviewService)
	studyHandler := api.NewStudyHandler(app.studyService)
	prefsHandler := api.NewPrefsHandler(app.prefsService)
	dataHandler := api.NewDataHandler(app.contentService)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/login", authHandler.Login)

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/courses", courseHandler.CreateCourse)
			r.Get("/courses", courseHandler.ListCourses)
			r.Get("/courses/{courseID}", courseHandler.GetCourse)
			r.Delete("/courses/{courseID}", courseHandler.DeleteCourse)
			r.Post("/courses/{courseID}/structure", courseHandler.AnalyzeStructure)
			r.Post("/courses/{courseID}/structure/generate", generationHandler.GenerateStructure)

			r.Get("/courses/{courseID}/topics/{topicID}/content/{contentType}", contentHandler.GetSlot)
			r.Put("/courses/{courseID}/topics/{topicID}/content/{contentType}", contentHandler.SaveContent)
			r.Put("/courses/{courseID}/topics/{topicID}/content/{contentType}/completed", contentHandler.SetCompleted)
			r.Post("/courses/{courseID}/topics/{topicID}/generate", generationHandler.GenerateContent)

			r.Get("/courses/{courseID}/topics/{topicID}/quiz", quizHandler.GetQuiz)
			r.Post("/courses/{courseID}/topics/{topicID}/quiz/attempts", quizHandler.SubmitAttempt)

			r.Post("/review/sessions", reviewHandler.StartSession)
			r.Get("/review/sessions/{sessionID}", reviewHandler.GetSession)
			r.Post("/review/sessions/{sessionID}/grade", reviewHandler.Grade)
			r.Delete("/review/sessions/{sessionID}", reviewHandler.EndSession)

			r.Get("/study/queue", studyHandler.GetQueue)

			r.Get("/prefs", prefsHandler.GetPrefs)
			r.Put("/prefs", prefsHandler.UpdatePrefs)

			r.Get("/data/export", dataHandler.Export)
			r.Post("/data/import", dataHandler.Import)

			r.Get("/tasks/{taskID}", generationHandler.TaskStatus)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
