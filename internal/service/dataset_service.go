package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/nypickups/backend/internal/domain"
	"github.com/nypickups/backend/pkg/utils"
)

// Preview size limits for the dataset page
const (
	DefaultPreviewRows = 5
	MaxPreviewRows     = 50
)

// DatasetService owns the labeled ride dataset and serves every dashboard view
type DatasetService struct {
	repo     RideRepository
	catalog  domain.ClusterCatalog
	resolver *LabelResolver
	filter   *ViewFilter

	once  sync.Once
	err   error
	rides []domain.LabeledRide // read-only after Load
}

// NewDatasetService creates a dataset service. The catalog is validated here
// so a bad configuration fails before any data is read.
func NewDatasetService(repo RideRepository, catalog domain.ClusterCatalog) (*DatasetService, error) {
	resolver, err := NewLabelResolver(catalog)
	if err != nil {
		return nil, err
	}
	filter, err := NewViewFilter(catalog)
	if err != nil {
		return nil, err
	}
	return &DatasetService{
		repo:     repo,
		catalog:  catalog,
		resolver: resolver,
		filter:   filter,
	}, nil
}

// Load reads and labels the rides. Only the first call does any work.
func (s *DatasetService) Load(ctx context.Context) error {
	s.once.Do(func() {
		raw, err := s.repo.LoadRides(ctx)
		if err != nil {
			s.err = fmt.Errorf("dataset: failed to load rides: %w", err)
			return
		}
		labeled, err := s.resolver.Label(raw)
		if err != nil {
			s.err = fmt.Errorf("dataset: %w", err)
			return
		}
		s.rides = labeled
		log.Printf("Loaded %d rides", len(labeled))
	})
	return s.err
}

// Len returns the number of loaded rides
func (s *DatasetService) Len() int {
	return len(s.rides)
}

// Rides returns the labeled dataset. Callers must not modify it.
func (s *DatasetService) Rides() []domain.LabeledRide {
	return s.rides
}

// Catalog returns the cluster configuration in use
func (s *DatasetService) Catalog() domain.ClusterCatalog {
	return s.catalog
}

// Health checks the backing store
func (s *DatasetService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

// DensityView filters the DBSCAN map for the toggle state
func (s *DatasetService) DensityView(t domain.ViewToggles) domain.DensityView {
	return s.filter.Apply(s.rides, t)
}

// PartitionView returns the unfiltered KMeans map
func (s *DatasetService) PartitionView() domain.PartitionView {
	return domain.PartitionView{
		Legend: s.catalog.Partition.Names(),
		Count:  len(s.rides),
		Labels: countLabels(s.rides, func(r domain.LabeledRide) string { return r.PartitionLabel }),
		Rides:  s.rides,
	}
}

// RidesPerDate returns the ride count per calendar date
func (s *DatasetService) RidesPerDate() []domain.DateCount {
	return ridesPerDate(s.rides)
}

// RidesPerMonth returns the ride count per month of the sample
func (s *DatasetService) RidesPerMonth() []domain.Bucket {
	return bucketize(s.rides, func(r domain.RideRecord) int { return r.Month }, intRange(5, 9), domain.MonthNames)
}

// RidesPerDayOfWeek returns the ride count per weekday, Monday first
func (s *DatasetService) RidesPerDayOfWeek() []domain.Bucket {
	return bucketize(s.rides, func(r domain.RideRecord) int { return r.DayOfWeek }, intRange(0, 6), domain.DayOfWeekNames)
}

// RidesPerHour returns the ride count for each of the 24 hours
func (s *DatasetService) RidesPerHour() []domain.Bucket {
	return bucketize(s.rides, func(r domain.RideRecord) int { return r.Hour }, intRange(0, 23), nil)
}

// Summary builds the dataset page
func (s *DatasetService) Summary(head int) domain.DatasetSummary {
	if head <= 0 {
		head = DefaultPreviewRows
	}
	head = utils.ClampInt(head, 1, MaxPreviewRows)
	if head > len(s.rides) {
		head = len(s.rides)
	}

	preview := make([]domain.RideRecord, head)
	for i := 0; i < head; i++ {
		preview[i] = s.rides[i].RideRecord
	}

	df := rideFrame(s.rides)
	missing := missingCounts(df)

	metadata := make([]domain.ColumnInfo, 0, len(domain.Columns))
	for _, name := range domain.Columns {
		colType := "datetime"
		if contains(df.Names(), name) {
			colType = string(df.Col(name).Type())
		}
		metadata = append(metadata, domain.ColumnInfo{
			Name:        name,
			Description: domain.ColumnDescriptions[name],
			Type:        colType,
			Missing:     missing[name],
		})
	}

	return domain.DatasetSummary{
		Rows:             len(s.rides),
		Columns:          len(domain.Columns),
		Metadata:         metadata,
		Preview:          preview,
		Statistics:       describeFrame(df),
		PartitionMapping: s.catalog.Partition,
		DensityMapping:   s.catalog.Density,
		PointsOfInterest: s.catalog.PointsOfInterest,
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
