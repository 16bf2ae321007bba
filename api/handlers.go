package api

import (
	"github.com/aesthetic-webworks/agency-site-backend/auth"
	"github.com/aesthetic-webworks/agency-site-backend/database"
	"github.com/aesthetic-webworks/agency-site-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, images *storage.ImageStore, tokens *auth.TokenManager) *routeHandlers {
	return &routeHandlers{
		authHandler:        newAuthHandler(db.UserRepo(), tokens),
		categoryHandler:    newCategoryHandler(db.CategoryRepo()),
		projectHandler:     newProjectHandler(db, images),
		testimonialHandler: newTestimonialHandler(db.TestimonialRepo(), images),
	}
}
