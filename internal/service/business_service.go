package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trustmart/internal/cache"
	apperrors "trustmart/internal/errors"
	"trustmart/internal/model"
	"trustmart/internal/repository"
	"trustmart/internal/validation"
)

// BusinessList is the directory read result with its cache metadata.
type BusinessList struct {
	Businesses     []model.BusinessSummary `json:"businesses"`
	Total          int                     `json:"total"`
	Cached         bool                    `json:"cached"`
	CacheTimestamp time.Time               `json:"cacheTimestamp"`
}

// BusinessDetail is a business with its rating summary and reviews.
type BusinessDetail struct {
	model.BusinessSummary
	Ratings []model.Rating `json:"ratings"`
}

// BusinessService serves the public directory, the business dashboard,
// and rating submission. Rating writes invalidate the directory list
// and the business detail before returning.
type BusinessService interface {
	ListBusinesses(ctx context.Context) (*BusinessList, error)
	GetBusiness(ctx context.Context, id uuid.UUID) (*BusinessDetail, error)
	Dashboard(ctx context.Context, email string) (*BusinessDetail, error)
	SubmitRating(ctx context.Context, in *validation.RatingCreate) (*model.Rating, error)
}

type businessService struct {
	businesses repository.BusinessRepository
	ratings    repository.RatingRepository
	cache      *cache.Client
	listTTL    time.Duration
}

// NewBusinessService builds a BusinessService with repositories and cache.
func NewBusinessService(businesses repository.BusinessRepository, ratings repository.RatingRepository, cacheClient *cache.Client, listTTL time.Duration) BusinessService {
	return &businessService{
		businesses: businesses,
		ratings:    ratings,
		cache:      cacheClient,
		listTTL:    listTTL,
	}
}

func (s *businessService) ListBusinesses(ctx context.Context) (*BusinessList, error) {
	if data, _ := s.cache.Get(ctx, cache.KeyBusinessList); data != nil {
		var cached []model.BusinessSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &BusinessList{
				Businesses:     cached,
				Total:          len(cached),
				Cached:         true,
				CacheTimestamp: time.Now().UTC(),
			}, nil
		}
	}

	summaries, err := s.businesses.ListWithRatings(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(summaries); err == nil {
		_ = s.cache.Set(ctx, cache.KeyBusinessList, payload, s.listTTL)
	}
	return &BusinessList{
		Businesses:     summaries,
		Total:          len(summaries),
		Cached:         false,
		CacheTimestamp: time.Now().UTC(),
	}, nil
}

func (s *businessService) GetBusiness(ctx context.Context, id uuid.UUID) (*BusinessDetail, error) {
	if data, _ := s.cache.Get(ctx, cache.BusinessByID(id.String())); data != nil {
		var cached BusinessDetail
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	business, err := s.businesses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	ratings, err := s.ratings.ListForBusiness(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &BusinessDetail{
		BusinessSummary: summarize(business, ratings),
		Ratings:         ratings,
	}

	if payload, err := json.Marshal(detail); err == nil {
		_ = s.cache.Set(ctx, cache.BusinessByID(id.String()), payload, s.listTTL)
	}
	return detail, nil
}

func (s *businessService) Dashboard(ctx context.Context, email string) (*BusinessDetail, error) {
	business, err := s.businesses.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return s.GetBusiness(ctx, business.ID)
}

func (s *businessService) SubmitRating(ctx context.Context, in *validation.RatingCreate) (*model.Rating, error) {
	businessID, err := uuid.Parse(in.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("parse business id: %w", err)
	}

	if _, err := s.businesses.FindByID(ctx, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	rating := &model.Rating{
		ID:            uuid.New(),
		BusinessID:    businessID,
		Rating:        in.Rating,
		Review:        in.Review,
		ReviewerName:  in.ReviewerName,
		ReviewerEmail: in.ReviewerEmail,
	}

	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx,
		cache.KeyBusinessList,
		cache.BusinessByID(businessID.String()),
	)

	return rating, nil
}

func summarize(business *model.Business, ratings []model.Rating) model.BusinessSummary {
	summary := model.BusinessSummary{
		Business:     *business,
		TotalRatings: int64(len(ratings)),
	}
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Rating
		}
		summary.AverageRating = float64(sum) / float64(len(ratings))
	}
	return summary
}
