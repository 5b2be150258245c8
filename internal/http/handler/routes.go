package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"svgapi/internal/service"
)

// RegisterRoutes attaches the API routes to the provided Fiber app.
// Each asset route runs under a request deadline; a handler that overruns
// it answers 408 through the timeout error mapping.
func RegisterRoutes(app *fiber.App, store HealthChecker, svc service.AssetService, requestTimeout time.Duration) {
	bounded := func(h fiber.Handler) fiber.Handler {
		return timeout.NewWithContext(h, requestTimeout)
	}

	api := app.Group("/api")

	api.Get("/health", HealthCheck(store))

	svgs := api.Group("/svgs")
	svgs.Get("/", bounded(ListAssets(svc)))
	svgs.Post("/", bounded(CreateAsset(svc)))
	// Registered before /:id so "search" is not captured as an id.
	svgs.Get("/search", bounded(SearchAssets(svc)))
	svgs.Get("/:id", bounded(GetAsset(svc)))
	svgs.Put("/:id", bounded(UpdateAsset(svc)))
	svgs.Delete("/:id", bounded(DeleteAsset(svc)))
	svgs.Get("/:id/download", bounded(DownloadAsset(svc)))

	// Backward-compatible simple liveness probe
	app.Get("/healthz", LivenessProbe())
}
