package models

// Category groups projects on the public site ("E-commerce", "UI/UX Design", ...).
// Title and slug both carry unique indexes: two titles that normalize to the
// same slug are rejected at the storage layer rather than silently colliding.
type Category struct {
	ID    uint   `json:"id" db:"id" gorm:"primaryKey"`
	Title string `json:"title" db:"title" gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug  string `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
}
