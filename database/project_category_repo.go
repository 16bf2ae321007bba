package database

import (
	"github.com/aesthetic-webworks/agency-site-backend/models"
	"gorm.io/gorm"
)

type ProjectCategoryRepo struct {
	db *gorm.DB
}

func NewProjectCategoryRepo(db *gorm.DB) *ProjectCategoryRepo {
	return &ProjectCategoryRepo{db}
}

// AddAll inserts the given project-category links in one batch write.
func (r *ProjectCategoryRepo) AddAll(links []models.ProjectCategory) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.Create(&links).Error
}

// FindByProjectID returns the junction rows for a single project.
func (r *ProjectCategoryRepo) FindByProjectID(projectID uint) ([]models.ProjectCategory, error) {
	links := []models.ProjectCategory{}
	err := r.db.Where("project_id = ?", projectID).Find(&links).Error
	return links, err
}

// DeleteByProjectID removes every junction row for a project. Used both
// before deleting the project and when an update replaces its categories.
func (r *ProjectCategoryRepo) DeleteByProjectID(projectID uint) error {
	return r.db.Where("project_id = ?", projectID).Delete(&models.ProjectCategory{}).Error
}

type projectCategoryTitle struct {
	ProjectID uint
	Title     string
}

// CategoryTitlesByProjectIDs resolves category titles for the whole id set
// in one join query, keyed by project id. Listing N projects costs one
// query here no matter how large N is.
func (r *ProjectCategoryRepo) CategoryTitlesByProjectIDs(projectIDs []uint) (map[uint][]string, error) {
	titles := make(map[uint][]string, len(projectIDs))
	if len(projectIDs) == 0 {
		return titles, nil
	}

	var rows []projectCategoryTitle
	err := r.db.Table("project_categories").
		Select("project_categories.project_id, categories.title").
		Joins("JOIN categories ON categories.id = project_categories.category_id").
		Where("project_categories.project_id IN ?", projectIDs).
		Order("project_categories.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		titles[row.ProjectID] = append(titles[row.ProjectID], row.Title)
	}
	return titles, nil
}

// CategoryTitlesByProjectID resolves category titles for a single project.
func (r *ProjectCategoryRepo) CategoryTitlesByProjectID(projectID uint) ([]string, error) {
	byProject, err := r.CategoryTitlesByProjectIDs([]uint{projectID})
	if err != nil {
		return nil, err
	}
	return byProject[projectID], nil
}
