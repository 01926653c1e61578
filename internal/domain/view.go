package domain

// Map zoom levels applied to the density cluster view
const (
	ZoomWide    = 7  // outliers are spread out to the distant airports
	ZoomDefault = 9  // every region except noise
	ZoomPOI     = 10 // points of interest sit in a small area
)

// ViewToggles is the density map filter state supplied by the caller
type ViewToggles struct {
	OnlyPointsOfInterest bool `json:"only_poi"`
	ShowOutliers         bool `json:"show_outliers"`
}

// LatLon is a geographic coordinate in degrees
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// MapBounds is the bounding box of the points shown on a map
type MapBounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// LabelCount is the number of rides carrying a place name
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DensityView is the filtered DBSCAN map: rows to plot plus the zoom directive
type DensityView struct {
	Toggles ViewToggles   `json:"toggles"`
	Zoom    int           `json:"zoom"`
	Center  *LatLon       `json:"center,omitempty"`
	Bounds  *MapBounds    `json:"bounds,omitempty"`
	SpanKm  float64       `json:"span_km"`
	Count   int           `json:"count"`
	Labels  []LabelCount  `json:"labels"`
	Rides   []LabeledRide `json:"rides"`
}

// PartitionView is the unfiltered KMeans map
type PartitionView struct {
	Legend []string      `json:"legend"`
	Count  int           `json:"count"`
	Labels []LabelCount  `json:"labels"`
	Rides  []LabeledRide `json:"rides"`
}

// Bucket is one bar or point of a time distribution chart
type Bucket struct {
	Key   int    `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DateCount is the number of rides on one calendar date
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
