package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lenslink/lenslink-backend/internal/config"
	"github.com/lenslink/lenslink-backend/internal/database"
	"github.com/lenslink/lenslink-backend/internal/handlers"
	"github.com/lenslink/lenslink-backend/internal/middleware"
	"github.com/lenslink/lenslink-backend/internal/services"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := services.InitRedis(cfg.Redis.URL); err != nil {
		logrus.Fatalf("Failed to initialize Redis: %v", err)
	}

	if err := services.InitStorage(); err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	bookingService := services.NewBookingService(db)
	notificationService := services.NewNotificationService(db)
	photographerService := services.NewPhotographerService(db)

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Static("/uploads", "./uploads")

	r.GET("/health", handlers.Health())

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", handlers.Signup(db))
			auth.POST("/login", handlers.Login(db, cfg))
			auth.POST("/refresh", handlers.Refresh(db, cfg))
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me(db))
		}

		// Public photographer directory
		api.GET("/photographers", handlers.ListPhotographers(photographerService))
		api.GET("/photographers/:id", handlers.GetPhotographer(photographerService))

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			photographers := protected.Group("/photographers")
			{
				photographers.GET("/me", handlers.GetMyProfile(db, photographerService))
				photographers.PUT("/me", handlers.UpdateMyProfile(db, photographerService))
				photographers.PATCH("/me", handlers.UpdateMyProfile(db, photographerService))
				photographers.POST("/me/image", handlers.UploadProfileImage(db, photographerService))
			}

			bookings := protected.Group("/bookings")
			{
				bookings.POST("", handlers.CreateBooking(db, bookingService))
				bookings.GET("/me", handlers.GetMyBookings(db, bookingService))
				bookings.PATCH("/:id", handlers.UpdateBookingStatus(db, bookingService))
				bookings.PUT("/:id/complete", handlers.CompleteBooking(db, bookingService))
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("/me", handlers.GetMyNotifications(db, notificationService))
				notifications.PATCH("/:id/read", handlers.MarkNotificationRead(db, notificationService))
			}
		}
	}

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
