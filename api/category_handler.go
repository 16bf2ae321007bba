package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aesthetic-webworks/agency-site-backend/database"
	"github.com/aesthetic-webworks/agency-site-backend/errs"
	"github.com/aesthetic-webworks/agency-site-backend/models"
)

type categoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
}

func newCategoryHandler(categoryRepo *database.CategoryRepo) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
	}
}

type categoryRequest struct {
	Title string `json:"title"`
}

type categoryBatchRequest struct {
	Titles []string `json:"titles"`
}

// listCategories returns all categories. Public read.
func (h categoryHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "categories", err))
			return
		}

		h.responder.WriteJSON(w, categories)
	}
}

// createCategory inserts a single category. The unique index on title (and
// slug) turns a duplicate into a 400 rather than racing a pre-check.
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("json", err))
			return
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		category := models.Category{Title: title, Slug: models.Slugify(title)}
		if err := h.categoryRepo.Add(&category); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "category", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, category)
	}
}

// createCategoryBatch de-duplicates the input, skips titles that already
// exist (one existence query), inserts the rest in one batch write and
// returns only the newly created rows. Nothing new to insert is still a
// success, answered with an empty array.
func (h categoryHandler) createCategoryBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryBatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("json", err))
			return
		}

		titles := dedupeTitles(req.Titles)
		if len(titles) == 0 {
			h.responder.WriteJSONStatus(w, http.StatusCreated, []models.Category{})
			return
		}

		existing, err := h.categoryRepo.ExistingTitles(titles)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "categories", err))
			return
		}
		taken := make(map[string]bool, len(existing))
		for _, title := range existing {
			taken[title] = true
		}

		created := make([]models.Category, 0, len(titles))
		for _, title := range titles {
			if taken[title] {
				continue
			}
			created = append(created, models.Category{Title: title, Slug: models.Slugify(title)})
		}

		if err := h.categoryRepo.AddAll(created); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "categories", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, created)
	}
}

// updateCategory replaces the title and recomputes the slug. A title owned
// by another category comes back as a 400 from the unique index.
func (h categoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamID(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		category, err := h.categoryRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFound("category"))
			return
		}

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("json", err))
			return
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		category.Title = title
		category.Slug = models.Slugify(title)
		if err := h.categoryRepo.Update(category); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory removes a category. The junction table's foreign key has
// no cascade, so a category still referenced by projects is refused with a
// message naming the remediation.
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamID(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		category, err := h.categoryRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFound("category"))
			return
		}

		if err := h.categoryRepo.Delete(id); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "category", err))
			return
		}

		h.responder.NoContent(w)
	}
}

// dedupeTitles trims, drops empties and removes duplicates while keeping
// the caller's ordering.
func dedupeTitles(titles []string) []string {
	seen := make(map[string]bool, len(titles))
	result := make([]string, 0, len(titles))
	for _, title := range titles {
		trimmed := strings.TrimSpace(title)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		result = append(result, trimmed)
	}
	return result
}
