package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/foxxcyber/itemdesk/internal/config"
	"github.com/foxxcyber/itemdesk/internal/database"
	"github.com/foxxcyber/itemdesk/internal/handlers"
	"github.com/foxxcyber/itemdesk/internal/middleware"
	"github.com/foxxcyber/itemdesk/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(context.Background(), db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Bearer tokens guard writes only when a secret is configured. The
	// verifier stays a nil interface otherwise.
	var verifier middleware.TokenVerifier
	if cfg.WriteAuthEnabled() {
		tokens, err := services.NewTokenService(cfg.JWTSecret, cfg.TokenExpiry)
		if err != nil {
			log.Fatalf("Failed to initialize token service: %v", err)
		}
		verifier = tokens
		log.Println("Write endpoints require a bearer token")
	} else if cfg.IsProduction() {
		log.Println("Warning: JWT_SECRET is not set, write endpoints are open")
	}

	h := handlers.New(db)
	h.Mount(app, verifier)

	// Static files
	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir, fiber.Static{
			Index:  "index.html",
			Browse: false,
		})
	}

	log.Printf("Server starting on port %s (%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
