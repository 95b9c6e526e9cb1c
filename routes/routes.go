package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/DASystem/config"
	"github.com/patiponrmutl/DASystem/handlers"
	"github.com/patiponrmutl/DASystem/middlewares"
	"github.com/patiponrmutl/DASystem/models"
	"github.com/patiponrmutl/DASystem/repository"
	"github.com/patiponrmutl/DASystem/service"
	"github.com/patiponrmutl/DASystem/storage"
)

// Register wires all HTTP routes. The DB handle and attachment store are
// constructed once in main and injected here.
func Register(e *echo.Echo, db *gorm.DB, store storage.AttachmentStore, cfg *config.Config) {
	apps := repository.NewApplicationRepository(db)
	users := repository.NewUserRepository(db)
	svc := service.NewApplicationService(apps, users)

	auth := handlers.NewAuthHandler(users, cfg.JWTSecret, cfg.Dev())
	app := handlers.NewApplicationHandler(svc, store, cfg.Dev())

	e.GET("/api/health", handlers.Health)

	// uploaded attachments are public static files
	e.Static("/uploads", cfg.UploadDir)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	reviewerMW := middlewares.RequireRole(models.RoleAdmin, models.RolePrincipal)

	a := e.Group("/api/auth")
	a.POST("/register", auth.Register)
	a.POST("/login", auth.Login)
	a.GET("/profile", auth.Profile, authMW)

	// all application routes require authentication
	g := e.Group("/api/applications", authMW)
	g.POST("", app.Create)
	g.GET("", app.List)
	g.GET("/stats", app.Stats, reviewerMW)
	g.GET("/:id", app.GetByID)
	g.PUT("/:id/status", app.UpdateStatus, reviewerMW)
	g.PUT("/:id", app.Update)
}
