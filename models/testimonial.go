package models

// Testimonial is a client quote shown on the marketing page.
type Testimonial struct {
	ID            uint    `json:"id" db:"id" gorm:"primaryKey"`
	AuthorName    string  `json:"authorName" db:"author_name" gorm:"type:varchar(255);not null"`
	AuthorCompany *string `json:"authorCompany" db:"author_company" gorm:"type:varchar(255)"`
	AuthorImage   *string `json:"authorImage" db:"author_image" gorm:"type:varchar(255)"`
	Content       string  `json:"content" db:"content" gorm:"type:text;not null"`
}
