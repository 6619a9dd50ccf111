package api

import (
	"errors"
	"time"

	"github.com/bedmade-app/bedmade/internal/models"
	"github.com/bedmade-app/bedmade/internal/services"
	"github.com/gofiber/fiber/v2"
)

var errInvalidDateParam = errors.New("invalid date parameter")

// GetRecords returns the user's outcome history, optionally bounded by
// from/to day query parameters. The calendar screen drives this.
func (handler *Handler) GetRecords(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, err := parseOptionalDayQuery(c.Query("from"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseOptionalDayQuery(c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}

	records, err := handler.verificationService.History(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load records")
	}

	return c.JSON(fiber.Map{"records": recordViews(records, handler.location)})
}

// ClearRecords wipes the user's history and cached counters. This is the
// reset affordance used by testing tools in the app.
func (handler *Handler) ClearRecords(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.verificationService.ClearHistory(user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to clear records")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func parseOptionalDayQuery(raw string, location *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, location)
	if err != nil {
		return nil, errInvalidDateParam
	}
	return &parsed, nil
}

type recordView struct {
	Date            string     `json:"date"`
	Made            bool       `json:"made"`
	MadeAt          *time.Time `json:"made_at,omitempty"`
	VerifiedByPhoto bool       `json:"verified_by_photo"`
}

func recordViews(records []models.DailyRecord, location *time.Location) []recordView {
	views := make([]recordView, 0, len(records))
	for _, record := range records {
		view := recordView{
			Date:            services.DayKey(record.Date, location),
			Made:            record.Made,
			VerifiedByPhoto: record.VerifiedByPhoto,
		}
		if record.MadeAt != nil {
			localized := record.MadeAt.In(location)
			view.MadeAt = &localized
		}
		views = append(views, view)
	}
	return views
}
