package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trustmart/internal/cache"
	apperrors "trustmart/internal/errors"
	"trustmart/internal/model"
	"trustmart/internal/validation"
)

// MockRatingRepository is a mock implementation of RatingRepository.
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *model.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]model.Rating, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Rating), args.Error(1)
}

func newBusinessFixture(t *testing.T) (*MockBusinessRepository, *MockRatingRepository, *cache.Client, BusinessService) {
	t.Helper()
	businesses := new(MockBusinessRepository)
	ratings := new(MockRatingRepository)
	cacheClient, _ := newTestCache(t)
	return businesses, ratings, cacheClient, NewBusinessService(businesses, ratings, cacheClient, 30*time.Minute)
}

func TestBusinessService_ListCacheAside(t *testing.T) {
	businesses, _, _, svc := newBusinessFixture(t)
	ctx := context.Background()

	summaries := []model.BusinessSummary{
		{Business: model.Business{ID: uuid.New(), BusinessName: "Corner Cafe"}, TotalRatings: 2, AverageRating: 4.5},
	}
	businesses.On("ListWithRatings", ctx).Return(summaries, nil).Once()

	first, err := svc.ListBusinesses(ctx)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, first.Total)

	second, err := svc.ListBusinesses(ctx)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Businesses, second.Businesses)

	businesses.AssertExpectations(t)
}

func TestBusinessService_GetComputesRatingSummary(t *testing.T) {
	businesses, ratings, _, svc := newBusinessFixture(t)
	ctx := context.Background()

	id := uuid.New()
	businesses.On("FindByID", ctx, id).Return(&model.Business{ID: id, BusinessName: "Corner Cafe"}, nil).Once()
	ratings.On("ListForBusiness", ctx, id).Return([]model.Rating{
		{ID: uuid.New(), BusinessID: id, Rating: 5},
		{ID: uuid.New(), BusinessID: id, Rating: 4},
	}, nil).Once()

	detail, err := svc.GetBusiness(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.TotalRatings)
	assert.InDelta(t, 4.5, detail.AverageRating, 0.001)

	// Second read is a cache hit; neither repository is consulted again.
	again, err := svc.GetBusiness(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, detail.TotalRatings, again.TotalRatings)

	businesses.AssertExpectations(t)
	ratings.AssertExpectations(t)
}

func TestBusinessService_GetMissingBusiness(t *testing.T) {
	businesses, _, _, svc := newBusinessFixture(t)
	ctx := context.Background()

	id := uuid.New()
	businesses.On("FindByID", ctx, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetBusiness(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBusinessService_SubmitRatingInvalidatesDirectory(t *testing.T) {
	businesses, ratings, cacheClient, svc := newBusinessFixture(t)
	ctx := context.Background()

	id := uuid.New()
	businesses.On("FindByID", ctx, id).Return(&model.Business{ID: id, BusinessName: "Corner Cafe"}, nil)
	ratings.On("Create", ctx, mock.AnythingOfType("*model.Rating")).Return(nil)

	require.NoError(t, cacheClient.Set(ctx, cache.KeyBusinessList, []byte("stale"), time.Minute))
	require.NoError(t, cacheClient.Set(ctx, cache.BusinessByID(id.String()), []byte("stale"), time.Minute))

	rating, err := svc.SubmitRating(ctx, &validation.RatingCreate{
		BusinessID:   id.String(),
		Rating:       5,
		Review:       "Great service",
		ReviewerName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, id, rating.BusinessID)
	assert.NotEqual(t, uuid.Nil, rating.ID)

	assert.False(t, cacheClient.Exists(ctx, cache.KeyBusinessList))
	assert.False(t, cacheClient.Exists(ctx, cache.BusinessByID(id.String())))
}

func TestBusinessService_SubmitRatingUnknownBusiness(t *testing.T) {
	businesses, ratings, _, svc := newBusinessFixture(t)
	ctx := context.Background()

	id := uuid.New()
	businesses.On("FindByID", ctx, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.SubmitRating(ctx, &validation.RatingCreate{BusinessID: id.String(), Rating: 4})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	ratings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBusinessService_DashboardResolvesByEmail(t *testing.T) {
	businesses, ratings, _, svc := newBusinessFixture(t)
	ctx := context.Background()

	id := uuid.New()
	stored := &model.Business{ID: id, BusinessName: "Corner Cafe", Email: "cafe@example.com"}
	businesses.On("FindByEmail", ctx, "cafe@example.com").Return(stored, nil)
	businesses.On("FindByID", ctx, id).Return(stored, nil)
	ratings.On("ListForBusiness", ctx, id).Return([]model.Rating{}, nil)

	detail, err := svc.Dashboard(ctx, "cafe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Corner Cafe", detail.BusinessName)
	assert.Equal(t, int64(0), detail.TotalRatings)
	assert.Equal(t, float64(0), detail.AverageRating)
}
