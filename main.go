package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sparklink/connect_backend/config"
	"github.com/sparklink/connect_backend/controllers"
	"github.com/sparklink/connect_backend/database"
	"github.com/sparklink/connect_backend/docs"
	"github.com/sparklink/connect_backend/mail"
	"github.com/sparklink/connect_backend/middleware"
	"github.com/sparklink/connect_backend/services"
)

// @title           Connect API
// @version         1.0
// @description     API server for the one-on-one connection scheduling service
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("database migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	var sender mail.Sender = mail.NopSender{}
	if cfg.SMTP.Host != "" {
		sender = mail.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		slog.Info("SMTP not configured, email delivery disabled")
	}

	notificationService := services.NewNotificationService(db, sender, cfg.AppBaseURL)
	inviteService := services.NewInviteService(db, notificationService)
	meetingService := services.NewMeetingService(db, notificationService)

	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	inviteController := controllers.NewInviteController(inviteService)
	meetingController := controllers.NewMeetingController(meetingService)
	notificationController := controllers.NewNotificationController(notificationService)

	// Set up Swagger info
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	// Set up router
	router := gin.Default()
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Authentication routes
	auth := router.Group("/api")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Protected routes
	api := router.Group("/api")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		api.GET("/me", authController.Me)

		// Invite routes
		api.POST("/invites", inviteController.CreateInvite)
		api.GET("/invites", inviteController.ListInvites)
		api.PUT("/invites", inviteController.UpdateInvite)

		// Meeting routes
		api.POST("/meetings", meetingController.CreateMeeting)
		api.GET("/meetings", meetingController.ListMeetings)
		api.PUT("/meetings", meetingController.UpdateMeeting)

		// Notification routes
		api.GET("/notifications", notificationController.ListNotifications)
		api.PUT("/notifications", notificationController.MarkNotificationsRead)
	}

	slog.Info("server starting", slog.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
