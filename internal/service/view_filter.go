package service

import (
	"sort"

	"github.com/golang/geo/s2"
	"github.com/nypickups/backend/internal/domain"
	"github.com/nypickups/backend/pkg/utils"
)

// ViewFilter selects the rides shown on the DBSCAN map and its zoom level
type ViewFilter struct {
	poi map[string]struct{}
}

// NewViewFilter creates a filter over the catalog's points of interest
func NewViewFilter(catalog domain.ClusterCatalog) (*ViewFilter, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	poi := make(map[string]struct{}, len(catalog.PointsOfInterest))
	for _, name := range catalog.PointsOfInterest {
		poi[name] = struct{}{}
	}
	return &ViewFilter{poi: poi}, nil
}

// IsPointOfInterest reports whether label is a flagged landmark
func (f *ViewFilter) IsPointOfInterest(label string) bool {
	_, ok := f.poi[label]
	return ok
}

// Include is the inclusion predicate for one density label
func (f *ViewFilter) Include(label string, t domain.ViewToggles) bool {
	outlier := label == domain.OutlierLabel
	if t.OnlyPointsOfInterest {
		if t.ShowOutliers {
			return f.IsPointOfInterest(label) || outlier
		}
		return f.IsPointOfInterest(label)
	}
	if t.ShowOutliers {
		return true
	}
	return !outlier
}

// ZoomFor returns the map zoom for the toggle state.
// Showing outliers always wins over the POI toggle.
func ZoomFor(t domain.ViewToggles) int {
	if t.ShowOutliers {
		return domain.ZoomWide
	}
	if t.OnlyPointsOfInterest {
		return domain.ZoomPOI
	}
	return domain.ZoomDefault
}

// Apply builds the density view. rides is never modified.
func (f *ViewFilter) Apply(rides []domain.LabeledRide, t domain.ViewToggles) domain.DensityView {
	shown := make([]domain.LabeledRide, 0, len(rides))
	for _, r := range rides {
		if f.Include(r.DensityLabel, t) {
			shown = append(shown, r)
		}
	}

	view := domain.DensityView{
		Toggles: t,
		Zoom:    ZoomFor(t),
		Count:   len(shown),
		Labels:  countLabels(shown, func(r domain.LabeledRide) string { return r.DensityLabel }),
		Rides:   shown,
	}
	view.Center, view.Bounds, view.SpanKm = mapExtent(shown)
	return view
}

// mapExtent returns the centre and bounding box of the rides
func mapExtent(rides []domain.LabeledRide) (*domain.LatLon, *domain.MapBounds, float64) {
	if len(rides) == 0 {
		return nil, nil, 0
	}

	rect := s2.EmptyRect()
	for _, r := range rides {
		rect = rect.AddPoint(s2.LatLngFromDegrees(r.Latitude, r.Longitude))
	}

	center := rect.Center()
	lo, hi := rect.Lo(), rect.Hi()
	bounds := &domain.MapBounds{
		South: lo.Lat.Degrees(),
		West:  lo.Lng.Degrees(),
		North: hi.Lat.Degrees(),
		East:  hi.Lng.Degrees(),
	}
	span := utils.Haversine(bounds.South, bounds.West, bounds.North, bounds.East)

	return &domain.LatLon{
		Lat: center.Lat.Degrees(),
		Lon: center.Lng.Degrees(),
	}, bounds, utils.RoundTo(span, 3)
}

// countLabels tallies rides per label, most frequent first
func countLabels(rides []domain.LabeledRide, label func(domain.LabeledRide) string) []domain.LabelCount {
	counts := make(map[string]int)
	for _, r := range rides {
		counts[label(r)]++
	}

	result := make([]domain.LabelCount, 0, len(counts))
	for name, n := range counts {
		result = append(result, domain.LabelCount{Label: name, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Label < result[j].Label
	})
	return result
}
