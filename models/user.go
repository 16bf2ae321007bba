package models

import "time"

// User is an admin account able to mutate site content.
type User struct {
	ID           uint      `json:"id" db:"id" gorm:"primaryKey"`
	Username     string    `json:"username" db:"username" gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password" gorm:"column:password;type:varchar(255);not null"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
