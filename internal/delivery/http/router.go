package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/nypickups/backend/internal/metrics"
	"github.com/nypickups/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, datasetSvc *service.DatasetService) {
	handler := NewHandler(datasetSvc)

	// Health check and scrape endpoint
	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// API v1 routes
	api := app.Group("/api/v1", instrument)
	{
		// Dataset page
		api.Get("/dataset", handler.GetDataset)
		api.Get("/mappings", handler.GetMappings)

		// Time distributions
		api.Get("/rides/per-date", handler.GetRidesPerDate)
		api.Get("/rides/per-month", handler.GetRidesPerMonth)
		api.Get("/rides/per-day-of-week", handler.GetRidesPerDayOfWeek)
		api.Get("/rides/per-hour", handler.GetRidesPerHour)

		// Cluster maps
		api.Get("/clusters/partition", handler.GetPartitionView)
		api.Get("/clusters/density", handler.GetDensityView)
	}

	// Server-rendered chart pages
	pages := app.Group("/charts", instrument)
	{
		pages.Get("/rides-over-time", handler.RidesOverTimeChart)
		pages.Get("/rides-per-month", handler.RidesPerMonthChart)
		pages.Get("/rides-per-day-of-week", handler.RidesPerDayOfWeekChart)
		pages.Get("/rides-per-hour", handler.RidesPerHourChart)
		pages.Get("/partition", handler.PartitionChart)
		pages.Get("/density", handler.DensityChart)
	}
}

// instrument records request count and latency per route
func instrument(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
	}
	route := c.Route().Path
	metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	metrics.RequestDurationMs.WithLabelValues(route).Observe(float64(time.Since(start).Microseconds()) / 1000)

	return err
}
