package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo            *UserRepo
	categoryRepo        *CategoryRepo
	projectRepo         *ProjectRepo
	projectCategoryRepo *ProjectCategoryRepo
	testimonialRepo     *TestimonialRepo

	db *gorm.DB
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:            NewUserRepo(db),
		categoryRepo:        NewCategoryRepo(db),
		projectRepo:         NewProjectRepo(db),
		projectCategoryRepo: NewProjectCategoryRepo(db),
		testimonialRepo:     NewTestimonialRepo(db),
		db:                  db,
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectCategoryRepo() *ProjectCategoryRepo {
	return d.projectCategoryRepo
}

func (d Database) TestimonialRepo() *TestimonialRepo {
	return d.testimonialRepo
}

// Transaction runs fn against a Database bound to a single transaction.
// Multi-step mutations (project create/update/delete and their junction
// writes) go through here so a partial failure rolls back cleanly.
func (d Database) Transaction(fn func(tx Database) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
