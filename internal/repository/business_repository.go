package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trustmart/internal/model"
)

// BusinessRepository defines persistence operations for businesses.
type BusinessRepository interface {
	Create(ctx context.Context, business *model.Business) error
	Update(ctx context.Context, business *model.Business) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Business, error)
	FindByEmail(ctx context.Context, email string) (*model.Business, error)
	ListWithRatings(ctx context.Context) ([]model.BusinessSummary, error)
}

type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository builds a GORM-backed repository.
func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, business *model.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

func (r *businessRepository) Update(ctx context.Context, business *model.Business) error {
	return r.db.WithContext(ctx).Save(business).Error
}

func (r *businessRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	var business model.Business
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) FindByEmail(ctx context.Context, email string) (*model.Business, error) {
	var business model.Business
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// ListWithRatings returns every business joined with its rating count
// and average, ordered by name.
func (r *businessRepository) ListWithRatings(ctx context.Context) ([]model.BusinessSummary, error) {
	var summaries []model.BusinessSummary
	err := r.db.WithContext(ctx).
		Model(&model.Business{}).
		Select("businesses.*, COUNT(ratings.id) AS total_ratings, COALESCE(AVG(ratings.rating), 0) AS average_rating").
		Joins("LEFT JOIN ratings ON ratings.business_id = businesses.id").
		Group("businesses.id").
		Order("businesses.business_name").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
