package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/profile", handler.AuthRequired, handler.GetProfile)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("/goal", handler.GetGoal)
	settings.Put("/goal", handler.UpdateGoal)

	verifications := api.Group("/verifications", handler.AuthRequired)
	verifications.Post("", handler.SubmitVerification)
	verifications.Post("/manual", handler.SubmitManualVerification)
	verifications.Get("/today", handler.GetTodayVerification)

	records := api.Group("/records", handler.AuthRequired)
	records.Get("", handler.GetRecords)
	records.Delete("", handler.ClearRecords)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("/overview", handler.GetStatsOverview)
}
