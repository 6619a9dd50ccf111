package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bedmade-app/bedmade/internal/api"
	"github.com/bedmade-app/bedmade/internal/db"
	"github.com/bedmade-app/bedmade/internal/security"
	"github.com/bedmade-app/bedmade/internal/services"
	"github.com/bedmade-app/bedmade/internal/storage"
	"github.com/bedmade-app/bedmade/internal/vision"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

const secretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env failed: %v", err)
	}

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey := resolveSecretKey()
	dbPath := getEnv("DB_PATH", filepath.Join("data", "bedmade.db"))
	port := getEnv("PORT", "8080")
	cookieSecure := getEnv("COOKIE_SECURE", "") == "1"

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	ctx := context.Background()
	classifier, err := buildClassifier(ctx)
	if err != nil {
		log.Fatalf("vision init failed: %v", err)
	}

	photos, err := storage.NewPhotoArchive(ctx, getEnv("AWS_REGION", "us-east-1"), os.Getenv("PHOTO_BUCKET"))
	if err != nil {
		log.Fatalf("photo archive init failed: %v", err)
	}

	handler := api.NewHandler(database, secretKey, location, classifier, photos, cookieSecure)

	app := fiber.New(fiber.Config{
		AppName:               "BedMade",
		DisableStartupMessage: true,
		BodyLimit:             16 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	api.RegisterRoutes(app, handler)

	reminders := services.NewReminderService(database, location)
	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	reminders.Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("BedMade listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func buildClassifier(ctx context.Context) (vision.Classifier, error) {
	switch provider := getEnv("VISION_PROVIDER", "openai"); provider {
	case "openai":
		return vision.NewOpenAIClassifier(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL")), nil
	case "rekognition":
		return vision.NewRekognitionClassifier(ctx, getEnv("AWS_REGION", "us-east-1"))
	case "stub":
		log.Println("vision: using stub classifier, every photo passes")
		return &vision.StubClassifier{Result: vision.Verdict{IsMade: true, Confidence: 1, Feedback: "stub verdict"}}, nil
	default:
		log.Printf("vision: unknown provider %q, falling back to openai", provider)
		return vision.NewOpenAIClassifier(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL")), nil
	}
}

func resolveSecretKey() string {
	if key := os.Getenv("SECRET_KEY"); key != "" {
		return key
	}

	// Sessions will not survive a restart without a configured key.
	generated, err := security.RandomString(48, secretAlphabet)
	if err != nil {
		log.Fatalf("generate session secret failed: %v", err)
	}
	log.Println("SECRET_KEY not set, generated an ephemeral session secret")
	return generated
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
