package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trustmart/internal/config"
	"trustmart/internal/db"
	"trustmart/internal/model"
	"trustmart/internal/repository"
	"trustmart/internal/service"
	"trustmart/internal/validation"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     string
	Age      int
}

var demoUsers = []seedUser{
	{Name: "Admin User", Email: "admin@example.com", Password: "admin123", Role: model.RoleAdmin, Age: 35},
	{Name: "Regular User", Email: "user@example.com", Password: "user123", Role: model.RoleUser, Age: 28},
	{Name: "Moderator User", Email: "moderator@example.com", Password: "mod123", Role: model.RoleModerator, Age: 31},
}

var demoTasks = []model.Task{
	{Title: "Complete project documentation", Description: "Write comprehensive documentation for the API", Status: model.TaskStatusPending, Priority: model.TaskPriorityHigh, AssignedTo: "alice@example.com"},
	{Title: "Review pull requests", Description: "Review and merge pending PRs", Status: model.TaskStatusInProgress, Priority: model.TaskPriorityMedium, AssignedTo: "bob@example.com"},
	{Title: "Update dependencies", Description: "Update packages to latest versions", Status: model.TaskStatusCompleted, Priority: model.TaskPriorityLow},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.Business{},
		&model.Rating{},
		&model.Announcement{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	businessRepo := repository.NewBusinessRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)

	seedUsers(ctx, userRepo)
	seedTasks(ctx, taskRepo)
	seedBusinesses(ctx, businessRepo, ratingRepo)

	log.Println("Seed completed")
}

func seedUsers(ctx context.Context, repo repository.UserRepository) {
	for _, su := range demoUsers {
		if _, err := repo.FindByEmail(ctx, su.Email); err == nil {
			log.Printf("User %s already exists, skipping", su.Email)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Lookup user %s: %v", su.Email, err)
		}

		hashed, err := service.HashPassword(su.Password)
		if err != nil {
			log.Fatalf("Hash password for %s: %v", su.Email, err)
		}

		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: hashed,
			Role:         su.Role,
			Age:          su.Age,
			IsActive:     true,
			CreatedBy:    "seed",
		}
		if err := repo.Create(ctx, user); err != nil {
			log.Fatalf("Create user %s: %v", su.Email, err)
		}
		log.Printf("Created user %s (%s)", su.Email, su.Role)
	}
}

func seedTasks(ctx context.Context, repo repository.TaskRepository) {
	count, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("Count tasks: %v", err)
	}
	if count > 0 {
		log.Printf("Tasks already seeded (%d present), skipping", count)
		return
	}

	for _, t := range demoTasks {
		task := t
		task.CreatedBy = "seed"
		if err := repo.Create(ctx, &task); err != nil {
			log.Fatalf("Create task %q: %v", task.Title, err)
		}
		log.Printf("Created task %q", task.Title)
	}
}

func seedBusinesses(ctx context.Context, businesses repository.BusinessRepository, ratings repository.RatingRepository) {
	demo := []struct {
		signup  validation.BusinessSignup
		ratings []int
	}{
		{validation.BusinessSignup{BusinessName: "Northwind Coffee", Email: "hello@northwind.example", Password: "coffee123"}, []int{5, 4, 5}},
		{validation.BusinessSignup{BusinessName: "Acme Repairs", Email: "contact@acme.example", Password: "repair123"}, []int{3, 4}},
	}

	for _, d := range demo {
		if _, err := businesses.FindByEmail(ctx, d.signup.Email); err == nil {
			log.Printf("Business %s already exists, skipping", d.signup.Email)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Lookup business %s: %v", d.signup.Email, err)
		}

		hashed, err := service.HashPassword(d.signup.Password)
		if err != nil {
			log.Fatalf("Hash password for %s: %v", d.signup.Email, err)
		}

		business := &model.Business{
			ID:           uuid.New(),
			BusinessName: d.signup.BusinessName,
			Email:        d.signup.Email,
			PasswordHash: hashed,
		}
		if err := businesses.Create(ctx, business); err != nil {
			log.Fatalf("Create business %s: %v", d.signup.Email, err)
		}

		for i, stars := range d.ratings {
			rating := &model.Rating{
				ID:           uuid.New(),
				BusinessID:   business.ID,
				Rating:       stars,
				ReviewerName: "Demo Reviewer",
				CreatedAt:    time.Now().Add(-time.Duration(i) * time.Hour),
			}
			if err := ratings.Create(ctx, rating); err != nil {
				log.Fatalf("Create rating for %s: %v", d.signup.Email, err)
			}
		}
		log.Printf("Created business %s with %d ratings", business.BusinessName, len(d.ratings))
	}
}
