package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"trustmart/internal/auth"
	"trustmart/internal/handler"
)

// Register wires routes and middleware. The authorizer runs globally:
// it matches protected prefixes by longest prefix and passes everything
// else through, so public routes need no opt-out.
func Register(
	e *echo.Echo,
	authorizer *auth.Authorizer,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	taskHandler *handler.TaskHandler,
	adminHandler *handler.AdminHandler,
	businessHandler *handler.BusinessHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(authorizer.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/business-login", authHandler.BusinessLogin)
	api.GET("/businesses", businessHandler.ListBusinesses)
	api.GET("/businesses/:id", businessHandler.GetBusiness)
	api.POST("/ratings", businessHandler.SubmitRating)

	// Protected routes; the authorizer enforces the role table.
	api.GET("/auth/profile", authHandler.Profile)

	api.GET("/users", userHandler.ListUsers)
	api.POST("/users", userHandler.CreateUser)
	api.PUT("/users", userHandler.UpdateUser)
	api.DELETE("/users", userHandler.DeleteUser)

	api.GET("/tasks", taskHandler.ListTasks)
	api.POST("/tasks", taskHandler.CreateTask)
	api.PUT("/tasks", taskHandler.UpdateTask)
	api.DELETE("/tasks", taskHandler.DeleteTask)

	api.GET("/admin", adminHandler.Dashboard)
	api.POST("/admin", adminHandler.CreateAnnouncement)

	// Page routes; the authorizer's cookie path guards /dashboard.
	e.GET("/login", businessHandler.LoginPage)
	e.GET("/dashboard", businessHandler.Dashboard)
}
