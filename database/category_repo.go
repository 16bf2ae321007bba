package database

import (
	"errors"

	"github.com/aesthetic-webworks/agency-site-backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns all categories from the database
func (r *CategoryRepo) FindAll() ([]models.Category, error) {
	categories := []models.Category{}
	err := r.db.Order("id").Find(&categories).Error
	return categories, err
}

// FindByID returns a category by its ID, or nil when no such category exists.
func (r *CategoryRepo) FindByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByTitles returns the categories whose titles match any of the given
// titles. Unknown titles are simply absent from the result.
func (r *CategoryRepo) FindByTitles(titles []string) ([]models.Category, error) {
	categories := []models.Category{}
	if len(titles) == 0 {
		return categories, nil
	}
	err := r.db.Where("title IN ?", titles).Find(&categories).Error
	return categories, err
}

// ExistingTitles returns, in a single query, the subset of titles that
// already have a category row.
func (r *CategoryRepo) ExistingTitles(titles []string) ([]string, error) {
	existing := []string{}
	if len(titles) == 0 {
		return existing, nil
	}
	err := r.db.Model(&models.Category{}).
		Where("title IN ?", titles).
		Pluck("title", &existing).Error
	return existing, err
}

// Add inserts a new category into the database
func (r *CategoryRepo) Add(category *models.Category) error {
	return r.db.Create(category).Error
}

// AddAll inserts the given categories in one batch write.
func (r *CategoryRepo) AddAll(categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return r.db.Create(&categories).Error
}

// Update updates an existing category in the database
func (r *CategoryRepo) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category from the database by id. A foreign key
// violation surfaces when projects still reference the category.
func (r *CategoryRepo) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}
