package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trustmart/internal/model"
	"trustmart/internal/validation"
)

// MockAnnouncementRepository is a mock implementation of AnnouncementRepository.
type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) List(ctx context.Context) ([]model.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Announcement), args.Error(1)
}

func TestAdminService_DashboardAggregatesLiveCounts(t *testing.T) {
	users := new(MockUserRepository)
	tasks := new(MockTaskRepository)
	announcements := new(MockAnnouncementRepository)
	svc := NewAdminService(users, tasks, announcements)
	ctx := context.Background()

	users.On("Count", ctx).Return(int64(12), nil)
	users.On("CountActive", ctx).Return(int64(10), nil)
	tasks.On("Count", ctx).Return(int64(30), nil)
	tasks.On("CountByStatus", ctx, model.TaskStatusCompleted).Return(int64(8), nil)
	announcements.On("List", ctx).Return([]model.Announcement{
		{ID: 1, Title: "Maintenance window", Priority: "high"},
	}, nil)

	dashboard, err := svc.Dashboard(ctx, adminCaller)
	require.NoError(t, err)
	assert.Equal(t, "Welcome Admin! You have full access.", dashboard.Message)
	assert.Equal(t, adminCaller, dashboard.User)
	assert.Equal(t, int64(12), dashboard.SystemStats.TotalUsers)
	assert.Equal(t, int64(10), dashboard.SystemStats.ActiveUsers)
	assert.Equal(t, int64(30), dashboard.SystemStats.TotalTasks)
	assert.Equal(t, int64(8), dashboard.SystemStats.CompletedTasks)
	assert.Equal(t, AdminPermissions, dashboard.Permissions)
	assert.Len(t, dashboard.Announcements, 1)
}

func TestAdminService_CreateAnnouncementDefaultsPriority(t *testing.T) {
	users := new(MockUserRepository)
	tasks := new(MockTaskRepository)
	announcements := new(MockAnnouncementRepository)
	svc := NewAdminService(users, tasks, announcements)
	ctx := context.Background()

	announcements.On("Create", ctx, mock.AnythingOfType("*model.Announcement")).Return(nil)

	a, err := svc.CreateAnnouncement(ctx, adminCaller, &validation.AnnouncementCreate{
		Title:   "Maintenance window",
		Message: "Saturday 02:00-04:00 UTC",
	})
	require.NoError(t, err)
	assert.Equal(t, "normal", a.Priority)
	assert.Equal(t, adminCaller.Email, a.CreatedBy)
}
