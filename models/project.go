package models

// Project is a showcased piece of client work. Image holds the web path of
// an uploaded asset (`/uploads/<filename>`) or nil when none was provided.
// IsLatest is a plain flag; several projects may be flagged at once.
type Project struct {
	ID       uint    `json:"id" db:"id" gorm:"primaryKey"`
	Title    string  `json:"title" db:"title" gorm:"type:varchar(255);not null"`
	Slug     string  `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Image    *string `json:"image" db:"image" gorm:"type:varchar(255)"`
	IsLatest bool    `json:"isLatest" db:"is_latest" gorm:"not null;default:false"`
}
