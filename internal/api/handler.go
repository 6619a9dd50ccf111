package api

import (
	"time"

	"github.com/bedmade-app/bedmade/internal/db"
	"github.com/bedmade-app/bedmade/internal/services"
	"github.com/bedmade-app/bedmade/internal/storage"
	"github.com/bedmade-app/bedmade/internal/vision"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool

	classifier vision.Classifier
	photos     *storage.PhotoArchive

	repositories        *db.Repositories
	authService         *services.AuthService
	goalService         *services.GoalService
	verificationService *services.VerificationService
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, classifier vision.Classifier, photos *storage.PhotoArchive, cookieSecure bool) *Handler {
	if location == nil {
		location = time.UTC
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
		classifier:   classifier,
		photos:       photos,
	}

	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.goalService = services.NewGoalService(handler.repositories.Users)
	handler.verificationService = services.NewVerificationService(
		handler.repositories.DailyRecords,
		handler.repositories.Users,
		handler.goalService,
		location,
	)

	return handler
}
