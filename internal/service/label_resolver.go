package service

import (
	"fmt"

	"github.com/nypickups/backend/internal/domain"
)

// LabelResolver translates raw cluster codes into place names
type LabelResolver struct {
	partition domain.ClusterTable
	density   domain.ClusterTable
}

// NewLabelResolver creates a resolver over a validated catalog
func NewLabelResolver(catalog domain.ClusterCatalog) (*LabelResolver, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &LabelResolver{
		partition: catalog.Partition,
		density:   catalog.Density,
	}, nil
}

// ResolvePartitionLabel returns the KMeans place name for code
func (r *LabelResolver) ResolvePartitionLabel(code int) (string, error) {
	name, ok := r.partition[code]
	if !ok {
		return "", &domain.UnmappedCodeError{Scheme: domain.SchemePartition, Code: code}
	}
	return name, nil
}

// ResolveDensityLabel returns the DBSCAN place name for code; -1 is "Outliers"
func (r *LabelResolver) ResolveDensityLabel(code int) (string, error) {
	name, ok := r.density[code]
	if !ok {
		return "", &domain.UnmappedCodeError{Scheme: domain.SchemeDensity, Code: code}
	}
	return name, nil
}

// Label resolves both cluster codes of every ride.
// The first unmapped code aborts the whole dataset.
func (r *LabelResolver) Label(rides []domain.RideRecord) ([]domain.LabeledRide, error) {
	labeled := make([]domain.LabeledRide, len(rides))
	for i, ride := range rides {
		partition, err := r.ResolvePartitionLabel(ride.PartitionCode)
		if err != nil {
			return nil, fmt.Errorf("labels: row %d: %w", i, err)
		}
		density, err := r.ResolveDensityLabel(ride.DensityCode)
		if err != nil {
			return nil, fmt.Errorf("labels: row %d: %w", i, err)
		}
		labeled[i] = domain.LabeledRide{
			RideRecord:     ride,
			PartitionLabel: partition,
			DensityLabel:   density,
		}
	}
	return labeled, nil
}
