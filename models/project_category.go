package models

// ProjectCategory links a project to a category. Rows are replaced wholesale
// whenever a project update carries a categories field, and deleted before
// their project row; the category FK has no cascade so a category that is
// still referenced cannot be removed.
type ProjectCategory struct {
	ID         uint `json:"id" db:"id" gorm:"primaryKey"`
	ProjectID  uint `json:"project_id" db:"project_id" gorm:"not null;index;uniqueIndex:idx_project_category"`
	CategoryID uint `json:"category_id" db:"category_id" gorm:"not null;uniqueIndex:idx_project_category"`

	Project  Project  `json:"-" gorm:"foreignKey:ProjectID;references:ID"`
	Category Category `json:"-" gorm:"foreignKey:CategoryID;references:ID"`
}
