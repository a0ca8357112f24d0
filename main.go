package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/reactivities/reactivities-go/config"
	"github.com/reactivities/reactivities-go/middleware"
	"github.com/reactivities/reactivities-go/routes"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db := config.InitDB()

	// Create a new Gin router
	r := gin.New()

	// Add logging and error-normalizing middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))
	r.Use(middleware.ErrorHandler())

	// Initialize routes
	routes.SetupRoutes(r, db)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
