package database

import (
	"errors"

	"github.com/aesthetic-webworks/agency-site-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects from the database
func (r *ProjectRepo) FindAll() ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.Order("id").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when no such project exists.
func (r *ProjectRepo) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project from the database by id. Junction rows must be
// deleted first; see ProjectCategoryRepo.DeleteByProjectID.
func (r *ProjectRepo) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}
