package repository

import (
	"context"

	"gorm.io/gorm"

	"trustmart/internal/model"
)

// AnnouncementRepository defines persistence operations for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	List(ctx context.Context) ([]model.Announcement, error)
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository builds a GORM-backed repository.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepository) List(ctx context.Context) ([]model.Announcement, error) {
	var announcements []model.Announcement
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}
