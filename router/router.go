package router

import (
	"context"
	"time"

	"Kubernetes-config-generator/counter"
	"Kubernetes-config-generator/export"
	helper "Kubernetes-config-generator/helper"
	"Kubernetes-config-generator/stats"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Dependencies are the collaborators behind the HTTP API. Stats and Counter
// may be nil.
type Dependencies struct {
	Export        export.Options
	Stats         *stats.Service
	StatsInterval time.Duration
	Counter       *counter.Store

	// BaseContext bounds long-lived streams. Cancel it before shutting the
	// server down so open event streams end.
	BaseContext context.Context
}

// NewApp builds the fiber application with every route mounted.
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Kubernetes-config-generator",
		ErrorHandler: helper.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	SetupRoutes(app, deps)
	return app
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	h := newHandler(deps)

	api := app.Group("/api")
	api.Get("health/check", CheckHealth)

	exp := api.Group("/export")
	exp.Post("/preview", h.PreviewExport)
	exp.Post("/download", h.DownloadExport)

	ws := api.Group("/workspace")
	ws.Post("/validate", h.ValidateWorkspace)
	ws.Post("/deployments", h.AddDeployment)
	ws.Put("/deployments", h.UpdateDeployment)
	ws.Post("/deployments/:id/duplicate", h.DuplicateDeployment)
	ws.Delete("/deployments/:id", h.RemoveDeployment)
	ws.Post("/namespaces", h.AddNamespace)
	ws.Delete("/namespaces/:name", h.DeleteNamespace)
	ws.Post("/configmaps", h.AddConfigMap)
	ws.Put("/configmaps", h.UpdateConfigMap)
	ws.Delete("/configmaps/:namespace/:name", h.DeleteConfigMap)
	ws.Post("/secrets", h.AddSecret)
	ws.Put("/secrets", h.UpdateSecret)
	ws.Delete("/secrets/:namespace/:name", h.DeleteSecret)

	api.Get("/stats", h.GetStats)
	api.Get("/stats/sse", h.GetStatsSse)

	if deps.Counter != nil {
		counter.SetupRoutes(api, deps.Counter)
	}
}
