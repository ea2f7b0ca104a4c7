package service

import (
	"context"
	"fmt"

	"trustmart/internal/auth"
	"trustmart/internal/model"
	"trustmart/internal/repository"
	"trustmart/internal/validation"
)

// AdminPermissions lists what the admin role may do, included in the
// admin dashboard payload.
var AdminPermissions = []string{
	"read_all_users",
	"write_all_users",
	"delete_all_users",
	"read_all_tasks",
	"write_all_tasks",
	"delete_all_tasks",
	"system_administration",
}

// AdminStats is the live system overview. Admin reads bypass the cache.
type AdminStats struct {
	TotalUsers     int64 `json:"totalUsers"`
	ActiveUsers    int64 `json:"activeUsers"`
	TotalTasks     int64 `json:"totalTasks"`
	CompletedTasks int64 `json:"completedTasks"`
}

// AdminDashboard is the admin GET payload.
type AdminDashboard struct {
	Message       string               `json:"message"`
	User          auth.Identity        `json:"user"`
	SystemStats   AdminStats           `json:"systemStats"`
	Permissions   []string             `json:"permissions"`
	Announcements []model.Announcement `json:"announcements"`
}

// AdminService serves the admin dashboard and announcements, uncached.
type AdminService interface {
	Dashboard(ctx context.Context, caller auth.Identity) (*AdminDashboard, error)
	CreateAnnouncement(ctx context.Context, caller auth.Identity, in *validation.AnnouncementCreate) (*model.Announcement, error)
}

type adminService struct {
	users         repository.UserRepository
	tasks         repository.TaskRepository
	announcements repository.AnnouncementRepository
}

// NewAdminService builds an AdminService over the backing repositories.
func NewAdminService(users repository.UserRepository, tasks repository.TaskRepository, announcements repository.AnnouncementRepository) AdminService {
	return &adminService{
		users:         users,
		tasks:         tasks,
		announcements: announcements,
	}
}

func (s *adminService) Dashboard(ctx context.Context, caller auth.Identity) (*AdminDashboard, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	activeUsers, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}
	totalTasks, err := s.tasks.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	completedTasks, err := s.tasks.CountByStatus(ctx, model.TaskStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("count completed tasks: %w", err)
	}
	announcements, err := s.announcements.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	return &AdminDashboard{
		Message: "Welcome Admin! You have full access.",
		User:    caller,
		SystemStats: AdminStats{
			TotalUsers:     totalUsers,
			ActiveUsers:    activeUsers,
			TotalTasks:     totalTasks,
			CompletedTasks: completedTasks,
		},
		Permissions:   AdminPermissions,
		Announcements: announcements,
	}, nil
}

func (s *adminService) CreateAnnouncement(ctx context.Context, caller auth.Identity, in *validation.AnnouncementCreate) (*model.Announcement, error) {
	in.ApplyDefaults()

	announcement := &model.Announcement{
		Title:     in.Title,
		Message:   in.Message,
		Priority:  in.Priority,
		CreatedBy: caller.Email,
	}

	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, err
	}

	return announcement, nil
}
