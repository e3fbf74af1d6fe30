package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	adminhandlers "github.com/Benjaminlucky/pcrl/handlers/admin"
	"github.com/Benjaminlucky/pcrl/handlers/auth"
	"github.com/Benjaminlucky/pcrl/handlers/realtors"
	"github.com/Benjaminlucky/pcrl/jobs"
	"github.com/Benjaminlucky/pcrl/migrations"
	"github.com/Benjaminlucky/pcrl/seed"
	"github.com/Benjaminlucky/pcrl/utils"
	"github.com/Benjaminlucky/pcrl/ws"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://pcrl.ng", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	utils.ConnectDatabase()
	migrations.Migrate()

	if err := seed.SeedAdmin(); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	hub := ws.NewHub()
	engine := jobs.NewBirthdayEngine(utils.DB, utils.NewSMTPMailerFromEnv(), hub, logger)
	scheduler := jobs.ScheduleDaily(engine)
	defer scheduler.Stop()

	// Public routes
	r.POST("/realtors/signup", realtors.Signup)
	r.POST("/realtors/login", realtors.Login)
	r.POST("/admin/signup", adminhandlers.Signup)
	r.POST("/admin/login", adminhandlers.Login)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Authenticated routes
	protected := r.Group("/")
	protected.Use(auth.Middleware())
	{
		protected.GET("/realtors/dashboard", realtors.Dashboard)
		protected.GET("/realtors/downlines", realtors.Downlines)
		protected.PUT("/realtors/avatar", realtors.UpdateAvatar)
		protected.GET("/realtors/list", realtors.List)
		protected.GET("/realtors/:id", realtors.GetByID)
		protected.PUT("/realtors/:id", realtors.Update)
		protected.DELETE("/realtors/:id", realtors.Delete)

		protected.GET("/ws", hub.ServeWS)

		adminOnly := protected.Group("/admin")
		adminOnly.Use(auth.AdminOnly())
		{
			adminOnly.GET("/dashboard", adminhandlers.Dashboard)
			adminOnly.GET("/upcoming-birthdays", adminhandlers.UpcomingBirthdays)
			adminOnly.GET("/birthday-notifications", adminhandlers.BirthdayNotifications)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
