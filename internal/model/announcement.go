package model

import "time"

// Announcement is a system-wide notice created through the admin API.
type Announcement struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Message   string    `json:"message" gorm:"size:1000;not null"`
	Priority  string    `json:"priority" gorm:"size:10;default:'normal'"`
	CreatedBy string    `json:"createdBy" gorm:"size:255"`
	CreatedAt time.Time `json:"createdAt"`
}
