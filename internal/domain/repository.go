package domain

import (
	"context"
)

// ColumnInfo describes one column of the dataset
type ColumnInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Missing     int    `json:"missing"`
}

// ColumnStats holds the descriptive statistics of a numeric column
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// DatasetSummary is everything the dataset page shows
type DatasetSummary struct {
	Rows             int           `json:"rows"`
	Columns          int           `json:"columns"`
	Metadata         []ColumnInfo  `json:"metadata"`
	Preview          []RideRecord  `json:"preview"`
	Statistics       []ColumnStats `json:"statistics"`
	PartitionMapping ClusterTable  `json:"kms_mapping"`
	DensityMapping   ClusterTable  `json:"dbscan_mapping"`
	PointsOfInterest []string      `json:"points_of_interest"`
}

// RideRepository defines the interface for the read-only ride store
// The domain defines it, the storage backends implement it
type RideRepository interface {
	// LoadRides returns every ride record in source order
	LoadRides(ctx context.Context) ([]RideRecord, error)

	// Health checks the backing store
	Health(ctx context.Context) error
}
