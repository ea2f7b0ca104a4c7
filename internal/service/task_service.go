package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"trustmart/internal/auth"
	"trustmart/internal/cache"
	apperrors "trustmart/internal/errors"
	"trustmart/internal/model"
	"trustmart/internal/repository"
	"trustmart/internal/validation"
)

// TaskList is the list read result with its cache metadata.
type TaskList struct {
	Tasks          []model.Task `json:"tasks"`
	TotalTasks     int          `json:"totalTasks"`
	CompletedTasks int          `json:"completedTasks"`
	Cached         bool         `json:"cached"`
	CacheTimestamp time.Time    `json:"cacheTimestamp"`
}

// TaskService exposes task operations with cache-aside reads. Writes
// invalidate the list key, the by-id key, and every filtered key whose
// filter value appears in the old or new record, strictly after the
// store write and strictly before returning.
type TaskService interface {
	ListTasks(ctx context.Context) (*TaskList, error)
	CreateTask(ctx context.Context, caller auth.Identity, in *validation.TaskCreate) (*model.Task, error)
	UpdateTask(ctx context.Context, caller auth.Identity, id uint, in *validation.TaskUpdate) (*model.Task, error)
	DeleteTask(ctx context.Context, caller auth.Identity, id uint) (*model.Task, error)
}

type taskService struct {
	repo    repository.TaskRepository
	cache   *cache.Client
	listTTL time.Duration
}

// NewTaskService builds a TaskService with repository and cache.
func NewTaskService(repo repository.TaskRepository, cacheClient *cache.Client, listTTL time.Duration) TaskService {
	return &taskService{repo: repo, cache: cacheClient, listTTL: listTTL}
}

func (s *taskService) ListTasks(ctx context.Context) (*TaskList, error) {
	if data, _ := s.cache.Get(ctx, cache.KeyTasksList); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return buildTaskList(cached, true), nil
		}
	}

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, cache.KeyTasksList, payload, s.listTTL)
	}
	return buildTaskList(tasks, false), nil
}

func buildTaskList(tasks []model.Task, cached bool) *TaskList {
	completed := 0
	for _, t := range tasks {
		if t.Status == model.TaskStatusCompleted {
			completed++
		}
	}
	return &TaskList{
		Tasks:          tasks,
		TotalTasks:     len(tasks),
		CompletedTasks: completed,
		Cached:         cached,
		CacheTimestamp: time.Now().UTC(),
	}
}

func (s *taskService) CreateTask(ctx context.Context, caller auth.Identity, in *validation.TaskCreate) (*model.Task, error) {
	in.ApplyDefaults()

	task := &model.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   caller.Email,
	}
	if in.DueDate != "" {
		due, err := time.Parse(time.RFC3339, in.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = &due
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	keys := []string{cache.KeyTasksList, cache.TasksByStatus(task.Status)}
	if task.AssignedTo != "" {
		keys = append(keys, cache.TasksByAssignee(task.AssignedTo))
	}
	_ = s.cache.Delete(ctx, keys...)

	return task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, caller auth.Identity, id uint, in *validation.TaskUpdate) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	oldStatus := task.Status
	oldAssignee := task.AssignedTo

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *in.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = &due
	}
	if in.AssignedTo != nil {
		task.AssignedTo = *in.AssignedTo
	}
	task.UpdatedBy = caller.Email

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	// A task that changed status must disappear from its old status
	// bucket, so both old and new filter values are invalidated.
	keys := []string{
		cache.KeyTasksList,
		cache.TaskByID(task.ID),
		cache.TasksByStatus(oldStatus),
		cache.TasksByStatus(task.Status),
	}
	if oldAssignee != "" {
		keys = append(keys, cache.TasksByAssignee(oldAssignee))
	}
	if task.AssignedTo != "" && task.AssignedTo != oldAssignee {
		keys = append(keys, cache.TasksByAssignee(task.AssignedTo))
	}
	_ = s.cache.Delete(ctx, keys...)

	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, caller auth.Identity, id uint) (*model.Task, error) {
	task, err := s.repo.Tombstone(ctx, id, caller.Email, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	keys := []string{
		cache.KeyTasksList,
		cache.TaskByID(task.ID),
		cache.TasksByStatus(task.Status),
	}
	if task.AssignedTo != "" {
		keys = append(keys, cache.TasksByAssignee(task.AssignedTo))
	}
	_ = s.cache.Delete(ctx, keys...)

	return task, nil
}
