package models

import "gorm.io/gorm"

// Migrate creates or updates the schema for all entities. Parents are listed
// before ProjectCategory so its foreign keys can be created in one pass.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Project{},
		&ProjectCategory{},
		&Testimonial{},
	)
}
