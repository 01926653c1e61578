package http

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/nypickups/backend/internal/domain"
	"github.com/nypickups/backend/internal/metrics"
	"github.com/nypickups/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	datasetSvc *service.DatasetService
}

// NewHandler creates a new handler
func NewHandler(datasetSvc *service.DatasetService) *Handler {
	return &Handler{datasetSvc: datasetSvc}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := fiber.StatusOK
	state := "ok"
	if err := h.datasetSvc.Health(c.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		status = fiber.StatusServiceUnavailable
		state = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  state,
		"service": "nypickups-backend",
		"version": "1.0.0",
		"rides":   h.datasetSvc.Len(),
	})
}

// GetDataset returns the dataset overview, preview and statistics
func (h *Handler) GetDataset(c *fiber.Ctx) error {
	head := c.QueryInt("head", service.DefaultPreviewRows)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.datasetSvc.Summary(head),
	})
}

// GetMappings returns both cluster tables and the points of interest
func (h *Handler) GetMappings(c *fiber.Ctx) error {
	catalog := h.datasetSvc.Catalog()

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"kms":                catalog.Partition,
			"dbscan":             catalog.Density,
			"points_of_interest": catalog.PointsOfInterest,
		},
	})
}

// GetRidesPerDate returns the number of rides over time
func (h *Handler) GetRidesPerDate(c *fiber.Ctx) error {
	data := h.datasetSvc.RidesPerDate()
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// GetRidesPerMonth returns the number of rides per month
func (h *Handler) GetRidesPerMonth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.datasetSvc.RidesPerMonth(),
	})
}

// GetRidesPerDayOfWeek returns the number of rides per weekday
func (h *Handler) GetRidesPerDayOfWeek(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.datasetSvc.RidesPerDayOfWeek(),
	})
}

// GetRidesPerHour returns the number of rides per hour of day
func (h *Handler) GetRidesPerHour(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.datasetSvc.RidesPerHour(),
	})
}

// GetPartitionView returns every ride with its KMeans label
func (h *Handler) GetPartitionView(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.datasetSvc.PartitionView(),
	})
}

// GetDensityView returns the filtered DBSCAN rides and the map zoom
func (h *Handler) GetDensityView(c *fiber.Ctx) error {
	view := h.densityView(c)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    view,
	})
}

// densityView reads the toggles from the query string.
// Defaults match the dashboard checkboxes: POI only, outliers hidden.
func (h *Handler) densityView(c *fiber.Ctx) domain.DensityView {
	toggles := domain.ViewToggles{
		OnlyPointsOfInterest: c.QueryBool("only_poi", true),
		ShowOutliers:         c.QueryBool("show_outliers", false),
	}
	view := h.datasetSvc.DensityView(toggles)
	metrics.ObserveDensityView(toggles.OnlyPointsOfInterest, toggles.ShowOutliers, view.Count)
	return view
}
