package main

import (
	"log"
	"os"

	"deliveryhub/config"
	"deliveryhub/database"
	"deliveryhub/engine"
	"deliveryhub/handlers"
	"deliveryhub/middleware"
	"deliveryhub/routes"
	"deliveryhub/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Set up the application configuration
	config.AppConfig.JWTSecret = jwtSecret
	config.AppConfig.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	config.AppConfig.Port = port
	middleware.JWTSecret = []byte(jwtSecret)

	// Initialize database
	database.Connect(databaseURL)
	defer database.Close()

	// Wire the recommendation engine to its storage collaborators
	orderStore := storage.NewOrderStore(database.GetDB())
	driverStore := storage.NewDriverStore(database.GetDB())
	handlers.InitRecommendationEngine(engine.New(orderStore, driverStore))

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	log.Fatal(app.Listen(":" + port))
}
