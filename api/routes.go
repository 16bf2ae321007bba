package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the JSON API under /api and the uploaded assets under
// /uploads. Reads are public; every mutating route sits behind the bearer gate.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, uploadsDir string) {
	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/auth/signup", handlers.authHandler.signup())
		r.Post("/auth/signin", handlers.authHandler.signin())

		r.Get("/projects", handlers.projectHandler.listProjects())
		r.Get("/categories", handlers.categoryHandler.listCategories())
		r.Get("/testimonials", handlers.testimonialHandler.listTestimonials())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/auth/me", handlers.authHandler.me())

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

			r.Post("/categories", handlers.categoryHandler.createCategory())
			r.Post("/categories/batch", handlers.categoryHandler.createCategoryBatch())
			r.Put("/categories/{categoryID}", handlers.categoryHandler.updateCategory())
			r.Delete("/categories/{categoryID}", handlers.categoryHandler.deleteCategory())

			r.Post("/testimonials", handlers.testimonialHandler.createTestimonial())
			r.Put("/testimonials/{testimonialID}", handlers.testimonialHandler.updateTestimonial())
			r.Delete("/testimonials/{testimonialID}", handlers.testimonialHandler.deleteTestimonial())
		})
	})

	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
	r.Get("/uploads/*", uploads.ServeHTTP)
}
