package database

import (
	"errors"

	"github.com/aesthetic-webworks/agency-site-backend/models"
	"gorm.io/gorm"
)

type TestimonialRepo struct {
	db *gorm.DB
}

func NewTestimonialRepo(db *gorm.DB) *TestimonialRepo {
	return &TestimonialRepo{db}
}

// FindAll returns all testimonials from the database
func (r *TestimonialRepo) FindAll() ([]models.Testimonial, error) {
	testimonials := []models.Testimonial{}
	err := r.db.Order("id").Find(&testimonials).Error
	return testimonials, err
}

// FindByID returns a testimonial by its ID, or nil when no such testimonial exists.
func (r *TestimonialRepo) FindByID(id uint) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	err := r.db.First(&testimonial, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// Add inserts a new testimonial into the database
func (r *TestimonialRepo) Add(testimonial *models.Testimonial) error {
	return r.db.Create(testimonial).Error
}

// Update updates an existing testimonial in the database
func (r *TestimonialRepo) Update(testimonial *models.Testimonial) error {
	return r.db.Save(testimonial).Error
}

// Delete removes a testimonial from the database by id
func (r *TestimonialRepo) Delete(id uint) error {
	return r.db.Delete(&models.Testimonial{}, id).Error
}
