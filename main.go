package main

import (
	"log"

	"trainvault/config"
	"trainvault/database"
	adminRoutes "trainvault/routers/adminRoutes"
	authRoutes "trainvault/routers/authRoutes"
	trainingRoutes "trainvault/routers/trainingRoutes"
	"trainvault/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	trainingRoutes.SetupTrainingRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	// Daily sweep that emails learners with past-due incomplete enrollments
	utils.InitializeOverdueScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
