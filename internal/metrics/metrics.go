package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nypickups_requests_total",
		Help: "Total number of API requests by route and status",
	}, []string{"route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nypickups_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	DensityViewsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nypickups_density_views_total",
		Help: "Density map renders by toggle combination",
	}, []string{"only_poi", "show_outliers"})
	DensityViewRides = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nypickups_density_view_rides",
		Help:    "Number of rides returned per density map render",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})
	RidesLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "nypickups_rides_loaded",
		Help: "Number of labeled rides held in memory",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(DensityViewsTotal)
	prometheus.MustRegister(DensityViewRides)
	prometheus.MustRegister(RidesLoaded)
}

// ObserveDensityView records one density map render
func ObserveDensityView(onlyPOI, showOutliers bool, rides int) {
	DensityViewsTotal.WithLabelValues(strconv.FormatBool(onlyPOI), strconv.FormatBool(showOutliers)).Inc()
	DensityViewRides.Observe(float64(rides))
}

// Handler returns the Prometheus scrape handler
func Handler() http.Handler { return promhttp.Handler() }
