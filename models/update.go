package models

import "time"

// Update is a daily-updates announcement shown on the festival site. Created
// and deleted by administrators only; regular clients poll the read-only feed.
type Update struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
