package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"trustmart/internal/auth"
	"trustmart/internal/cache"
	apperrors "trustmart/internal/errors"
	"trustmart/internal/model"
	"trustmart/internal/repository"
	"trustmart/internal/validation"
)

const seedPasswordCost = 10

// UserList is the list read result with its cache metadata.
type UserList struct {
	Users          []model.User `json:"users"`
	TotalUsers     int          `json:"totalUsers"`
	Cached         bool         `json:"cached"`
	CacheTimestamp time.Time    `json:"cacheTimestamp"`
}

// UserService exposes user operations. The cache holds the unfiltered
// record set; role-based post-filters are applied after the cache read
// so hits and misses return the same view.
type UserService interface {
	ListUsers(ctx context.Context, caller auth.Identity) (*UserList, error)
	CreateUser(ctx context.Context, caller auth.Identity, in *validation.UserCreate) (*model.User, error)
	UpdateUser(ctx context.Context, caller auth.Identity, id uint, in *validation.UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, caller auth.Identity, id uint) (*model.User, error)
}

type userService struct {
	repo    repository.UserRepository
	cache   *cache.Client
	listTTL time.Duration
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cacheClient *cache.Client, listTTL time.Duration) UserService {
	return &userService{repo: repo, cache: cacheClient, listTTL: listTTL}
}

func (s *userService) ListUsers(ctx context.Context, caller auth.Identity) (*UserList, error) {
	if data, _ := s.cache.Get(ctx, cache.KeyUsersList); data != nil {
		var cached []model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return buildUserList(cached, caller, true), nil
		}
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(users); err == nil {
		_ = s.cache.Set(ctx, cache.KeyUsersList, payload, s.listTTL)
	}
	return buildUserList(users, caller, false), nil
}

// buildUserList applies the role post-filter: non-admins see only
// active users.
func buildUserList(users []model.User, caller auth.Identity, cached bool) *UserList {
	visible := users
	if !caller.IsAdmin() {
		visible = make([]model.User, 0, len(users))
		for _, u := range users {
			if u.IsActive {
				visible = append(visible, u)
			}
		}
	}
	return &UserList{
		Users:          visible,
		TotalUsers:     len(visible),
		Cached:         cached,
		CacheTimestamp: time.Now().UTC(),
	}
}

func (s *userService) CreateUser(ctx context.Context, caller auth.Identity, in *validation.UserCreate) (*model.User, error) {
	in.ApplyDefaults()

	// Only an admin may mint another admin.
	if in.Role == model.RoleAdmin && !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	user := &model.User{
		Name:      in.Name,
		Email:     in.Email,
		Age:       in.Age,
		Role:      in.Role,
		IsActive:  *in.IsActive,
		CreatedBy: caller.Email,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx,
		cache.KeyUsersList,
		cache.UserByID(user.ID),
		cache.UserByEmail(user.Email),
	)

	return user, nil
}

// UpdateUser merges a partial payload onto the stored record. The
// self-service and privilege-escalation checks run in the handler
// before validation, so violations never reach this method.
func (s *userService) UpdateUser(ctx context.Context, caller auth.Identity, id uint, in *validation.UserUpdate) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	oldEmail := user.Email

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Age != nil {
		user.Age = *in.Age
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedBy = caller.Email

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	keys := []string{
		cache.KeyUsersList,
		cache.UserByID(user.ID),
		cache.UserByEmail(oldEmail),
	}
	if user.Email != oldEmail {
		keys = append(keys, cache.UserByEmail(user.Email))
	}
	_ = s.cache.Delete(ctx, keys...)

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, caller auth.Identity, id uint) (*model.User, error) {
	if !caller.IsAdmin() && caller.ID != id {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.repo.Tombstone(ctx, id, caller.Email, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	_ = s.cache.Delete(ctx,
		cache.KeyUsersList,
		cache.UserByID(user.ID),
		cache.UserByEmail(user.Email),
	)

	return user, nil
}

// HashPassword hashes a plaintext password for storage. Shared by the
// auth service and the seeder.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), seedPasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
