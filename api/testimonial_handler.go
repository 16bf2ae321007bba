package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aesthetic-webworks/agency-site-backend/database"
	"github.com/aesthetic-webworks/agency-site-backend/errs"
	"github.com/aesthetic-webworks/agency-site-backend/models"
	"github.com/aesthetic-webworks/agency-site-backend/storage"
)

type testimonialHandler struct {
	responder       Responder
	logger          zerolog.Logger
	testimonialRepo *database.TestimonialRepo
	images          *storage.ImageStore
}

func newTestimonialHandler(testimonialRepo *database.TestimonialRepo, images *storage.ImageStore) testimonialHandler {
	logger := log.With().Str("handlerName", "testimonialHandler").Logger()

	return testimonialHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		testimonialRepo: testimonialRepo,
		images:          images,
	}
}

// testimonialResponse mirrors what the site renders: the author folded into
// a nested object and the id as a string.
type testimonialResponse struct {
	ID      string            `json:"id"`
	Author  testimonialAuthor `json:"author"`
	Content string            `json:"content"`
}

type testimonialAuthor struct {
	Name    string  `json:"name"`
	Company *string `json:"company"`
	Image   *string `json:"image"`
}

func newTestimonialResponse(t models.Testimonial) testimonialResponse {
	return testimonialResponse{
		ID: strconv.FormatUint(uint64(t.ID), 10),
		Author: testimonialAuthor{
			Name:    t.AuthorName,
			Company: t.AuthorCompany,
			Image:   t.AuthorImage,
		},
		Content: t.Content,
	}
}

// listTestimonials returns all testimonials. Public read.
func (h testimonialHandler) listTestimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonials, err := h.testimonialRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "testimonials", err))
			return
		}

		response := make([]testimonialResponse, len(testimonials))
		for i, testimonial := range testimonials {
			response[i] = newTestimonialResponse(testimonial)
		}

		h.responder.WriteJSON(w, response)
	}
}

// createTestimonial follows the same discipline as projects: validate and
// store the author image first, insert the row, and remove the stored file
// again if the insert fails.
func (h testimonialHandler) createTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		authorName := strings.TrimSpace(r.FormValue("authorName"))
		if authorName == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("authorName"))
			return
		}
		content := strings.TrimSpace(r.FormValue("content"))
		if content == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}

		imagePath, err := h.saveAuthorImage(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		testimonial := models.Testimonial{
			AuthorName: authorName,
			Content:    content,
		}
		if company := strings.TrimSpace(r.FormValue("authorCompany")); company != "" {
			testimonial.AuthorCompany = &company
		}
		if imagePath != "" {
			testimonial.AuthorImage = &imagePath
		}

		if err := h.testimonialRepo.Add(&testimonial); err != nil {
			h.images.Delete(imagePath)
			h.responder.WriteError(w, errs.NewDatabaseError("create", "testimonial", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, newTestimonialResponse(testimonial))
	}
}

// updateTestimonial replaces the scalar fields and swaps the author image
// only when a new file arrived; the old file is deleted after the row write
// succeeds, never before.
func (h testimonialHandler) updateTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamID(r, "testimonialID")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		testimonial, err := h.testimonialRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "testimonial", err))
			return
		}
		if testimonial == nil {
			h.responder.WriteError(w, errs.NewNotFound("testimonial"))
			return
		}

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		authorName := strings.TrimSpace(r.FormValue("authorName"))
		if authorName == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("authorName"))
			return
		}
		content := strings.TrimSpace(r.FormValue("content"))
		if content == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}

		newImagePath, saveErr := h.saveAuthorImage(r)
		if saveErr != nil {
			h.responder.WriteError(w, saveErr)
			return
		}

		oldImagePath := ""
		if testimonial.AuthorImage != nil {
			oldImagePath = *testimonial.AuthorImage
		}

		testimonial.AuthorName = authorName
		testimonial.Content = content
		testimonial.AuthorCompany = nil
		if company := strings.TrimSpace(r.FormValue("authorCompany")); company != "" {
			testimonial.AuthorCompany = &company
		}
		if newImagePath != "" {
			testimonial.AuthorImage = &newImagePath
		}

		if err := h.testimonialRepo.Update(testimonial); err != nil {
			h.images.Delete(newImagePath)
			h.responder.WriteError(w, errs.NewDatabaseError("update", "testimonial", err))
			return
		}

		if newImagePath != "" && oldImagePath != "" {
			h.images.Delete(oldImagePath)
		}

		h.responder.WriteJSON(w, newTestimonialResponse(*testimonial))
	}
}

// deleteTestimonial removes the row, then the author image file.
func (h testimonialHandler) deleteTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamID(r, "testimonialID")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		testimonial, err := h.testimonialRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "testimonial", err))
			return
		}
		if testimonial == nil {
			h.responder.WriteError(w, errs.NewNotFound("testimonial"))
			return
		}

		if err := h.testimonialRepo.Delete(id); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "testimonial", err))
			return
		}

		if testimonial.AuthorImage != nil {
			h.images.Delete(*testimonial.AuthorImage)
		}

		h.responder.NoContent(w)
	}
}

func (h testimonialHandler) saveAuthorImage(r *http.Request) (string, error) {
	file, header, err := formFile(r, "authorImage")
	if err != nil {
		return "", errs.NewMalformedPayloadError("multipart", err)
	}
	if file == nil {
		return "", nil
	}
	defer file.Close()

	return h.images.Save("authorImage", file, header)
}
