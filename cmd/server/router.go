package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/livefit/livefit-api/internal/api"
	apiMiddleware "github.com/livefit/livefit-api/internal/api/middleware"
	"github.com/livefit/livefit-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	userHandler := api.NewUserHandler(app.userService, app.bookingService, app.logger)
	creditHandler := api.NewCreditPackageHandler(app.creditService)
	skillHandler := api.NewSkillHandler(app.skillService)
	coachHandler := api.NewCoachHandler(app.coachService)
	courseHandler := api.NewCourseHandler(app.courseService, app.bookingService, app.logger)
	uploadHandler := api.NewUploadHandler(app.uploadService, app.config.Storage.MaxUploadBytes)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", userHandler.Signup)
			r.Post("/login", userHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Get("/profile", userHandler.GetProfile)
				r.Put("/profile", userHandler.UpdateProfile)
				r.Put("/password", userHandler.ChangePassword)
				r.Get("/credit-package", userHandler.ListPurchases)
				r.Get("/courses", userHandler.ListCourses)
			})
		})

		r.Route("/credit-package", func(r chi.Router) {
			r.Get("/", creditHandler.List)
			r.Post("/", creditHandler.Create)
			r.Delete("/{creditPackageId}", creditHandler.Delete)
			r.With(authMiddleware.Authenticate).Post("/{creditPackageId}", creditHandler.Purchase)
		})

		r.Route("/coaches", func(r chi.Router) {
			r.Get("/skill", skillHandler.List)
			r.Post("/skill", skillHandler.Create)
			r.Delete("/skill/{skillId}", skillHandler.Delete)

			r.Get("/", coachHandler.List)
			r.Get("/{coachId}", coachHandler.Get)
			r.Get("/{coachId}/courses", coachHandler.ListCourses)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/coaches/{userId}", coachHandler.Promote)

			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.RequireCoach)
				r.Get("/coaches", coachHandler.GetProfile)
				r.Put("/coaches", coachHandler.UpdateProfile)
				r.Get("/coaches/courses", courseHandler.ListOwn)
				r.Post("/coaches/courses", courseHandler.Create)
				r.Get("/coaches/courses/{courseId}", courseHandler.GetOwn)
				r.Put("/coaches/courses/{courseId}", courseHandler.Update)
			})
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", courseHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/{courseId}", courseHandler.Book)
				r.Delete("/{courseId}", courseHandler.Cancel)
			})
		})

		r.Route("/upload", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/", uploadHandler.Upload)
			r.Get("/", uploadHandler.List)
		})
	})

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, api.MsgRouteNotFound)
	})

	return r
}
