package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a single star rating left for a business.
type Rating struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	BusinessID    uuid.UUID `json:"business_id" gorm:"type:char(36);index;not null"`
	Rating        int       `json:"rating" gorm:"not null"`
	Review        string    `json:"review,omitempty" gorm:"size:1000"`
	ReviewerName  string    `json:"reviewer_name,omitempty" gorm:"size:100"`
	ReviewerEmail string    `json:"reviewer_email,omitempty" gorm:"size:255"`
	CreatedAt     time.Time `json:"created_at"`
}
