package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aesthetic-webworks/agency-site-backend/database"
	"github.com/aesthetic-webworks/agency-site-backend/errs"
	"github.com/aesthetic-webworks/agency-site-backend/models"
	"github.com/aesthetic-webworks/agency-site-backend/storage"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
	images    *storage.ImageStore
}

func newProjectHandler(db database.Database, images *storage.ImageStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
		images:    images,
	}
}

// projectResponse is a project with its category titles resolved.
type projectResponse struct {
	models.Project
	Categories []string `json:"categories"`
}

// listProjects returns all projects with their categories. Titles for the
// whole result set are resolved in a single join query, never per project.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.db.ProjectRepo().FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "projects", err))
			return
		}

		ids := make([]uint, len(projects))
		for i, project := range projects {
			ids[i] = project.ID
		}

		titlesByProject, err := h.db.ProjectCategoryRepo().CategoryTitlesByProjectIDs(ids)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project categories", err))
			return
		}

		response := make([]projectResponse, len(projects))
		for i, project := range projects {
			response[i] = newProjectResponse(project, titlesByProject[project.ID])
		}

		h.responder.WriteJSON(w, response)
	}
}

// createProject stores the image first (validated), then writes the project
// row and its junction rows in one transaction. If anything after the file
// write fails, the stored file is removed again.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		title := strings.TrimSpace(r.FormValue("title"))
		if title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		categoryTitles := splitCSV(r.FormValue("categories"))
		isLatest := r.FormValue("isLatest") == "true"

		imagePath, err := h.saveFormImage(r, "image")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := models.Project{
			Title:    title,
			Slug:     models.Slugify(title),
			IsLatest: isLatest,
		}
		if imagePath != "" {
			project.Image = &imagePath
		}

		err = h.db.Transaction(func(tx database.Database) error {
			if err := tx.ProjectRepo().Add(&project); err != nil {
				return errs.NewDatabaseError("create", "project", err)
			}
			return linkCategories(tx, project.ID, categoryTitles)
		})
		if err != nil {
			h.images.Delete(imagePath)
			h.responder.WriteError(w, err)
			return
		}

		titles, err := h.db.ProjectCategoryRepo().CategoryTitlesByProjectID(project.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project categories", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, newProjectResponse(project, titles))
	}
}

// updateProject replaces the scalar fields, swaps the image only when a new
// file arrived, and fully replaces the category links when a categories
// field was supplied. The old image is deleted only after the transaction
// commits so a failed write never loses it.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		project, err := h.db.ProjectRepo().FindByID(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		title := strings.TrimSpace(r.FormValue("title"))
		if title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		replaceCategories := hasFormField(r, "categories")
		categoryTitles := splitCSV(r.FormValue("categories"))

		newImagePath, saveErr := h.saveFormImage(r, "image")
		if saveErr != nil {
			h.responder.WriteError(w, saveErr)
			return
		}

		oldImagePath := ""
		if project.Image != nil {
			oldImagePath = *project.Image
		}

		project.Title = title
		project.Slug = models.Slugify(title)
		project.IsLatest = r.FormValue("isLatest") == "true"
		if newImagePath != "" {
			project.Image = &newImagePath
		}

		err = h.db.Transaction(func(tx database.Database) error {
			if err := tx.ProjectRepo().Update(project); err != nil {
				return errs.NewDatabaseError("update", "project", err)
			}
			if replaceCategories {
				if err := tx.ProjectCategoryRepo().DeleteByProjectID(id); err != nil {
					return errs.NewDatabaseError("delete", "project categories", err)
				}
				return linkCategories(tx, id, categoryTitles)
			}
			return nil
		})
		if err != nil {
			h.images.Delete(newImagePath)
			h.responder.WriteError(w, err)
			return
		}

		// The replaced file goes away only after the write committed.
		if newImagePath != "" && oldImagePath != "" {
			h.images.Delete(oldImagePath)
		}

		titles, err := h.db.ProjectCategoryRepo().CategoryTitlesByProjectID(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project categories", err))
			return
		}

		h.responder.WriteJSON(w, newProjectResponse(*project, titles))
	}
}

// deleteProject removes junction rows and the project row in one
// transaction, then the image file. Ordering guarantees a partial failure
// never leaves junction rows pointing at a deleted project.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		project, err := h.db.ProjectRepo().FindByID(id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		err = h.db.Transaction(func(tx database.Database) error {
			if err := tx.ProjectCategoryRepo().DeleteByProjectID(id); err != nil {
				return errs.NewDatabaseError("delete", "project categories", err)
			}
			if err := tx.ProjectRepo().Delete(id); err != nil {
				return errs.NewDatabaseError("delete", "project", err)
			}
			return nil
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if project.Image != nil {
			h.images.Delete(*project.Image)
		}

		h.responder.NoContent(w)
	}
}

// saveFormImage validates and stores an optional uploaded image, returning
// its web path or "" when the field was absent.
func (h projectHandler) saveFormImage(r *http.Request, field string) (string, error) {
	file, header, err := formFile(r, field)
	if err != nil {
		return "", errs.NewMalformedPayloadError("multipart", err)
	}
	if file == nil {
		return "", nil
	}
	defer file.Close()

	return h.images.Save(field, file, header)
}

// linkCategories inserts junction rows for the titles that name an existing
// category. Unknown titles are silently ignored; creating missing
// categories up front is the caller's job (POST /categories/batch).
func linkCategories(tx database.Database, projectID uint, titles []string) error {
	if len(titles) == 0 {
		return nil
	}

	categories, err := tx.CategoryRepo().FindByTitles(titles)
	if err != nil {
		return errs.NewDatabaseError("find", "categories", err)
	}

	links := make([]models.ProjectCategory, len(categories))
	for i, category := range categories {
		links[i] = models.ProjectCategory{ProjectID: projectID, CategoryID: category.ID}
	}

	if err := tx.ProjectCategoryRepo().AddAll(links); err != nil {
		return errs.NewDatabaseError("create", "project categories", err)
	}
	return nil
}

func newProjectResponse(project models.Project, categories []string) projectResponse {
	if categories == nil {
		categories = []string{}
	}
	return projectResponse{Project: project, Categories: categories}
}
