package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	_ "trustmart/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"trustmart/internal/auth"
	"trustmart/internal/cache"
	"trustmart/internal/config"
	"trustmart/internal/db"
	apperrors "trustmart/internal/errors"
	"trustmart/internal/handler"
	"trustmart/internal/model"
	"trustmart/internal/repository"
	"trustmart/internal/response"
	"trustmart/internal/router"
	"trustmart/internal/service"
	"trustmart/internal/validation"
)

// @title TrustMart API
// @version 1.0
// @description Customer-trust and ratings platform with role-protected CRUD APIs and cache-aside reads.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())
	e.HTTPErrorHandler = errorHandler

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Rating{},
			&model.Business{},
			&model.Announcement{},
			&model.Task{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.Business{},
		&model.Rating{},
		&model.Announcement{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	businessRepo := repository.NewBusinessRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)
	announcementRepo := repository.NewAnnouncementRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authorizer := auth.NewAuthorizer(jwtService, auth.DefaultAPIRules(), auth.DefaultPagePrefixes())

	validator := validation.New()

	// Services
	authService := service.NewAuthService(userRepo, businessRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient, cfg.CacheTTLMedium)
	taskService := service.NewTaskService(taskRepo, cacheClient, cfg.CacheTTLMedium)
	businessService := service.NewBusinessService(businessRepo, ratingRepo, cacheClient, cfg.CacheTTLLong)
	adminService := service.NewAdminService(userRepo, taskRepo, announcementRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, validator)
	taskHandler := handler.NewTaskHandler(taskService, validator)
	adminHandler := handler.NewAdminHandler(adminService, validator)
	businessHandler := handler.NewBusinessHandler(businessService, validator)

	router.Register(
		e,
		authorizer,
		authHandler,
		userHandler,
		taskHandler,
		adminHandler,
		businessHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// errorHandler renders every uncaught error as the response envelope.
// Panics recovered by the Recover middleware land here too; their raw
// message rides in the details field for diagnostics.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	code := apperrors.CodeInternalError
	var details interface{} = err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		message = fmt.Sprint(he.Message)
		details = nil
		if status == http.StatusNotFound {
			code = apperrors.CodeNotFound
		}
	}

	if werr := response.Error(c, status, message, code, details); werr != nil {
		log.Printf("error handler write: %v", werr)
	}
}
