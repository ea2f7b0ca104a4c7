package model

import (
	"time"

	"github.com/google/uuid"
)

// Business represents a registered business account.
type Business struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	BusinessName string    `json:"business_name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BusinessSummary is a business with its aggregated rating figures.
type BusinessSummary struct {
	Business
	TotalRatings  int64   `json:"total_ratings"`
	AverageRating float64 `json:"average_rating"`
}
