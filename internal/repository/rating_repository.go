package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trustmart/internal/model"
)

// RatingRepository defines persistence operations for ratings.
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]model.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository builds a GORM-backed repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
