package http

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gofiber/fiber/v2"
	"github.com/nypickups/backend/internal/domain"
)

// renderer is implemented by every go-echarts chart
type renderer interface {
	Render(w io.Writer) error
}

// mapWidthPx is the nominal width of the map panel used to turn a zoom
// level into a longitude span
const mapWidthPx = 800

func initOpts(pageTitle string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: pageTitle,
		Width:     "1100px",
		Height:    "650px",
	})
}

func sendChart(c *fiber.Ctx, chart renderer) error {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render chart")
	}
	c.Type("html")
	return c.Send(buf.Bytes())
}

func barChart(title, axis string, buckets []domain.Bucket) *charts.Bar {
	labels := make([]string, len(buckets))
	data := make([]opts.BarData, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
		data[i] = opts.BarData{Value: b.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(title),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: pointer(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: pointer(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: axis}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Number of Rides"}),
	)
	bar.SetXAxis(labels).AddSeries("Number of Rides", data)
	return bar
}

// RidesOverTimeChart renders the rides-per-date line chart
func (h *Handler) RidesOverTimeChart(c *fiber.Ctx) error {
	perDate := h.datasetSvc.RidesPerDate()
	dates := make([]string, len(perDate))
	data := make([]opts.LineData, len(perDate))
	for i, d := range perDate {
		dates[i] = d.Date
		data[i] = opts.LineData{Value: d.Count}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("Number of Rides over Time"),
		charts.WithTitleOpts(opts.Title{Title: "Number of Rides over Time"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: pointer(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Number of Rides"}),
	)
	line.SetXAxis(dates).AddSeries("Number of Rides", data)
	return sendChart(c, line)
}

// RidesPerMonthChart renders the rides-per-month bar chart
func (h *Handler) RidesPerMonthChart(c *fiber.Ctx) error {
	return sendChart(c, barChart("Number of Rides per Month", "Month", h.datasetSvc.RidesPerMonth()))
}

// RidesPerDayOfWeekChart renders the rides-per-weekday bar chart
func (h *Handler) RidesPerDayOfWeekChart(c *fiber.Ctx) error {
	return sendChart(c, barChart("Number of Rides per Day of Week", "Day of Week", h.datasetSvc.RidesPerDayOfWeek()))
}

// RidesPerHourChart renders the rides-per-hour bar chart
func (h *Handler) RidesPerHourChart(c *fiber.Ctx) error {
	return sendChart(c, barChart("Number of Rides per Hour", "Hour", h.datasetSvc.RidesPerHour()))
}

// scatterByLabel plots lon/lat points grouped into one series per label.
// Series follow the order of legend; labels absent from it come last.
func scatterByLabel(rides []domain.LabeledRide, legend []string, label func(domain.LabeledRide) string) *charts.Scatter {
	groups := make(map[string][]opts.ScatterData)
	var extra []string
	known := make(map[string]bool, len(legend))
	for _, name := range legend {
		known[name] = true
	}
	for _, r := range rides {
		name := label(r)
		if !known[name] {
			known[name] = true
			extra = append(extra, name)
		}
		groups[name] = append(groups[name], opts.ScatterData{
			Value:      []interface{}{r.Longitude, r.Latitude},
			SymbolSize: 4,
		})
	}

	scatter := charts.NewScatter()
	for _, name := range append(append([]string(nil), legend...), extra...) {
		points, ok := groups[name]
		if !ok {
			continue
		}
		scatter.AddSeries(name, points).
			SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: pointer(false)}))
	}
	return scatter
}

// PartitionChart renders the KMeans cluster map
func (h *Handler) PartitionChart(c *fiber.Ctx) error {
	view := h.datasetSvc.PartitionView()

	scatter := scatterByLabel(view.Rides, view.Legend, func(r domain.LabeledRide) string { return r.PartitionLabel })
	scatter.SetGlobalOptions(
		initOpts("KNN Clustering"),
		charts.WithTitleOpts(opts.Title{Title: "KNN Clustering", Subtitle: fmt.Sprintf("%d rides", view.Count)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: pointer(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Lon", Type: "value", Min: "dataMin", Max: "dataMax"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Lat", Type: "value", Min: "dataMin", Max: "dataMax"}),
	)
	return sendChart(c, scatter)
}

// DensityChart renders the filtered DBSCAN cluster map. The zoom directive
// sets the visible window around the centre of the shown rides.
func (h *Handler) DensityChart(c *fiber.Ctx) error {
	view := h.densityView(c)

	scatter := scatterByLabel(view.Rides, h.datasetSvc.Catalog().Density.Names(), func(r domain.LabeledRide) string { return r.DensityLabel })
	xAxis := opts.XAxis{Name: "Lon", Type: "value", Min: "dataMin", Max: "dataMax"}
	yAxis := opts.YAxis{Name: "Lat", Type: "value", Min: "dataMin", Max: "dataMax"}
	if view.Center != nil {
		lonSpan, latSpan := viewport(view.Zoom, view.Center.Lat)
		xAxis.Min, xAxis.Max = view.Center.Lon-lonSpan/2, view.Center.Lon+lonSpan/2
		yAxis.Min, yAxis.Max = view.Center.Lat-latSpan/2, view.Center.Lat+latSpan/2
	}

	scatter.SetGlobalOptions(
		initOpts("DBSCAN Clustering"),
		charts.WithTitleOpts(opts.Title{
			Title:    "DBSCAN Clustering",
			Subtitle: fmt.Sprintf("%d rides, zoom %d", view.Count, view.Zoom),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: pointer(true)}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
	)
	return sendChart(c, scatter)
}

// viewport returns the degrees of longitude and latitude visible on a web
// mercator map of mapWidthPx at the given zoom
func viewport(zoom int, lat float64) (lonSpan, latSpan float64) {
	lonSpan = 360 * mapWidthPx / (256 * math.Exp2(float64(zoom)))
	// 650/1100 panel aspect, shrunk by the mercator stretch at lat
	latSpan = lonSpan * 650 / 1100 * math.Cos(lat*math.Pi/180)
	return lonSpan, latSpan
}

func pointer(b bool) *bool {
	return &b
}
