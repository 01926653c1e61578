package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/nypickups/backend/internal/delivery/http"
	"github.com/nypickups/backend/internal/domain"
	"github.com/nypickups/backend/internal/metrics"
	"github.com/nypickups/backend/internal/repository/csvfile"
	"github.com/nypickups/backend/internal/repository/memory"
	"github.com/nypickups/backend/internal/repository/postgres"
	"github.com/nypickups/backend/internal/repository/sqlite"
	"github.com/nypickups/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Dependency Injection: Repository
	rideRepo, closeRepo := openRepository(ctx, cfg)
	defer closeRepo()

	// Dependency Injection: Services
	datasetSvc, err := service.NewDatasetService(rideRepo, domain.DefaultClusterCatalog())
	if err != nil {
		log.Fatalf("Invalid cluster configuration: %v", err)
	}
	if err := datasetSvc.Load(ctx); err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	metrics.RidesLoaded.Set(float64(datasetSvc.Len()))

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "NY Pickups API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, datasetSvc)

	// Graceful shutdown
	go func() {
		port := cfg.Port
		if port == "" {
			port = "8080"
		}
		log.Printf("Server starting on :%s (%s)", port, cfg.Env)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}

type Config struct {
	DataSource  string
	DataPath    string
	DatabaseURL string
	SQLitePath  string
	Port        string
	Env         string
}

func loadConfig() *Config {
	return &Config{
		DataSource:  getEnv("DATA_SOURCE", "csv"),
		DataPath:    getEnv("DATA_PATH", "data/new_york_taxi_clusters.csv"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "data/pickups.db"),
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// openRepository picks the ride store for DATA_SOURCE. An unreachable
// Postgres falls back to the CSV file.
func openRepository(ctx context.Context, cfg *Config) (domain.RideRepository, func()) {
	noop := func() {}

	switch cfg.DataSource {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(ctx)
			if err != nil {
				pool.Close()
			}
		}
		if err != nil {
			log.Printf("Warning: Could not connect to database: %v", err)
			log.Printf("Falling back to %s", cfg.DataPath)
			return csvfile.NewRepository(cfg.DataPath), noop
		}
		log.Println("Connected to PostgreSQL")
		return postgres.NewPostgresRepository(pool), pool.Close

	case "sqlite":
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open SQLite database: %v", err)
		}
		log.Printf("Using SQLite database %s", cfg.SQLitePath)
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Printf("Failed to close SQLite database: %v", err)
			}
		}

	case "demo":
		log.Println("Running with demo data only")
		return memory.NewMockRepository(), noop

	default:
		log.Printf("Reading rides from %s", cfg.DataPath)
		return csvfile.NewRepository(cfg.DataPath), noop
	}
}
