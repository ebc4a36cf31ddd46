package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-tracker/internal/middleware"
)

type Handlers struct {
	Applications *ApplicationHandler
	Insights     *InsightHandler
	Profiles     *ProfileHandler
	Documents    *DocumentHandler
	Metrics      *MetricsHandler
}

// RegisterRoutes mounts the API on api. Everything except /health and
// /users needs a caller.
func RegisterRoutes(api fiber.Router, h *Handlers) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	api.Post("/users", h.Profiles.HandleCreateUser)

	authed := api.Group("", middleware.RequireUser())

	authed.Get("/profile", h.Profiles.HandleGet)
	authed.Put("/profile", h.Profiles.HandleUpdate)
	authed.Get("/profile/resumes", h.Profiles.HandleResumes)

	authed.Post("/documents", h.Documents.HandleUpload)

	// static segments before /:id
	authed.Get("/applications", h.Applications.HandleList)
	authed.Post("/applications", h.Applications.HandleCreate)
	authed.Get("/applications/board", h.Applications.HandleBoard)
	authed.Post("/applications/sample", h.Applications.HandleInsertSamples)
	authed.Delete("/applications/sample", h.Applications.HandleClearSamples)
	authed.Get("/applications/:id", h.Applications.HandleGet)
	authed.Patch("/applications/:id", h.Applications.HandleUpdate)
	authed.Delete("/applications/:id", h.Applications.HandleDelete)

	authed.Post("/applications/:id/insights", h.Insights.HandleGenerate)
	authed.Post("/applications/:id/insights/:type", h.Insights.HandleSave)
	authed.Delete("/applications/:id/insights/:type/:index", h.Insights.HandleRemove)
	authed.Post("/insights", h.Insights.HandleGenerateFromPayload)
	authed.Get("/insights/search", h.Insights.HandleSearch)

	authed.Get("/metrics", h.Metrics.HandleMetrics)
}
