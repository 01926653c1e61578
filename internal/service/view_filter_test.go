package service

import (
	"reflect"
	"testing"

	"github.com/nypickups/backend/internal/domain"
)

func newFilter(t *testing.T) *ViewFilter {
	t.Helper()
	f, err := NewViewFilter(domain.DefaultClusterCatalog())
	if err != nil {
		t.Fatalf("Failed to create view filter: %v", err)
	}
	return f
}

func ride(label string, lat, lon float64) domain.LabeledRide {
	return domain.LabeledRide{
		RideRecord:   domain.RideRecord{Latitude: lat, Longitude: lon},
		DensityLabel: label,
	}
}

func labelsOf(rides []domain.LabeledRide) []string {
	out := make([]string, len(rides))
	for i, r := range rides {
		out[i] = r.DensityLabel
	}
	return out
}

var mixedRides = []domain.LabeledRide{
	ride("Manhattan", 40.75, -73.99),
	ride("Outliers", 41.05, -73.54),
	ride("John F. Kennedy Airport", 40.64, -73.78),
	ride("Brooklyn", 40.68, -73.94),
	ride("Center Blvd", 40.74, -73.96),
	ride("Queens Plaza", 40.75, -73.94),
}

func TestZoomFor(t *testing.T) {
	cases := []struct {
		onlyPOI, showOutliers bool
		zoom                  int
	}{
		{true, true, 7},
		{true, false, 10},
		{false, true, 7},
		{false, false, 9},
	}
	for _, c := range cases {
		got := ZoomFor(domain.ViewToggles{OnlyPointsOfInterest: c.onlyPOI, ShowOutliers: c.showOutliers})
		if got != c.zoom {
			t.Errorf("onlyPOI=%v showOutliers=%v: expected zoom %d, got %d", c.onlyPOI, c.showOutliers, c.zoom, got)
		}
	}
}

func TestApplyDecisionTable(t *testing.T) {
	f := newFilter(t)
	cases := []struct {
		toggles domain.ViewToggles
		labels  []string
		zoom    int
	}{
		{
			domain.ViewToggles{OnlyPointsOfInterest: true, ShowOutliers: true},
			[]string{"Outliers", "John F. Kennedy Airport", "Center Blvd"},
			7,
		},
		{
			domain.ViewToggles{OnlyPointsOfInterest: true, ShowOutliers: false},
			[]string{"John F. Kennedy Airport", "Center Blvd"},
			10,
		},
		{
			domain.ViewToggles{OnlyPointsOfInterest: false, ShowOutliers: true},
			[]string{"Manhattan", "Outliers", "John F. Kennedy Airport", "Brooklyn", "Center Blvd", "Queens Plaza"},
			7,
		},
		{
			domain.ViewToggles{OnlyPointsOfInterest: false, ShowOutliers: false},
			[]string{"Manhattan", "John F. Kennedy Airport", "Brooklyn", "Center Blvd", "Queens Plaza"},
			9,
		},
	}

	for _, c := range cases {
		view := f.Apply(mixedRides, c.toggles)
		if view.Zoom != c.zoom {
			t.Errorf("%+v: expected zoom %d, got %d", c.toggles, c.zoom, view.Zoom)
		}
		if got := labelsOf(view.Rides); !reflect.DeepEqual(got, c.labels) {
			t.Errorf("%+v: expected %v, got %v", c.toggles, c.labels, got)
		}
		if view.Count != len(c.labels) {
			t.Errorf("%+v: expected count %d, got %d", c.toggles, len(c.labels), view.Count)
		}
		if view.Toggles != c.toggles {
			t.Errorf("Expected toggles %+v to be echoed, got %+v", c.toggles, view.Toggles)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	f := newFilter(t)
	toggles := domain.ViewToggles{OnlyPointsOfInterest: true, ShowOutliers: true}

	first := f.Apply(mixedRides, toggles)
	second := f.Apply(mixedRides, toggles)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical views, got %+v and %+v", first, second)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	f := newFilter(t)
	input := append([]domain.LabeledRide(nil), mixedRides...)

	view := f.Apply(input, domain.ViewToggles{})
	if !reflect.DeepEqual(input, mixedRides) {
		t.Error("Expected input rides to be unchanged")
	}
	if len(view.Rides) > 0 {
		view.Rides[0].DensityLabel = "changed"
		if input[0].DensityLabel == "changed" {
			t.Error("Expected the view to own its slice")
		}
	}
}

func TestZoomIgnoresResultCardinality(t *testing.T) {
	f := newFilter(t)
	noOutliers := []domain.LabeledRide{
		ride("Manhattan", 40.75, -73.99),
		ride("LaGuardia Airport", 40.77, -73.87),
	}

	view := f.Apply(noOutliers, domain.ViewToggles{ShowOutliers: true})
	if view.Zoom != 7 {
		t.Errorf("Expected zoom 7, got %d", view.Zoom)
	}
}

func TestApplyEmptyResult(t *testing.T) {
	f := newFilter(t)
	onlyRegions := []domain.LabeledRide{
		ride("Manhattan", 40.75, -73.99),
		ride("Brooklyn", 40.68, -73.94),
	}

	view := f.Apply(onlyRegions, domain.ViewToggles{OnlyPointsOfInterest: true})
	if view.Count != 0 || len(view.Rides) != 0 {
		t.Errorf("Expected no rides, got %d", view.Count)
	}
	if view.Zoom != 10 {
		t.Errorf("Expected zoom 10, got %d", view.Zoom)
	}
	if view.Center != nil || view.Bounds != nil {
		t.Error("Expected no centre or bounds for an empty view")
	}
}

func TestApplyEndToEnd(t *testing.T) {
	f := newFilter(t)
	rides := []domain.LabeledRide{
		ride("Manhattan", 40.75, -73.99),
		ride("Outliers", 41.05, -73.54),
		ride("John F. Kennedy Airport", 40.64, -73.78),
	}

	view := f.Apply(rides, domain.ViewToggles{OnlyPointsOfInterest: true, ShowOutliers: false})
	if len(view.Rides) != 1 || view.Rides[0].DensityLabel != "John F. Kennedy Airport" {
		t.Fatalf("Expected only the JFK ride, got %v", labelsOf(view.Rides))
	}
	if view.Zoom != 10 {
		t.Errorf("Expected zoom 10, got %d", view.Zoom)
	}
	if view.Center == nil {
		t.Fatal("Expected a centre for a non-empty view")
	}
	if diff := view.Center.Lat - 40.64; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected centre latitude 40.64, got %f", view.Center.Lat)
	}
	if view.SpanKm != 0 {
		t.Errorf("Expected zero span for a single point, got %f", view.SpanKm)
	}
}

func TestApplyBounds(t *testing.T) {
	f := newFilter(t)
	view := f.Apply(mixedRides, domain.ViewToggles{ShowOutliers: true})

	if view.Bounds == nil {
		t.Fatal("Expected bounds")
	}
	b := view.Bounds
	if b.South > 40.64+1e-9 || b.North < 41.05-1e-9 {
		t.Errorf("Expected latitude bounds to cover 40.64..41.05, got %f..%f", b.South, b.North)
	}
	if b.West > -73.99+1e-9 || b.East < -73.54-1e-9 {
		t.Errorf("Expected longitude bounds to cover -73.99..-73.54, got %f..%f", b.West, b.East)
	}
	if view.SpanKm <= 0 {
		t.Errorf("Expected a positive span, got %f", view.SpanKm)
	}
}

func TestApplyLabelCounts(t *testing.T) {
	f := newFilter(t)
	rides := []domain.LabeledRide{
		ride("Brooklyn", 40.68, -73.94),
		ride("Manhattan", 40.75, -73.99),
		ride("Brooklyn", 40.69, -73.95),
	}

	view := f.Apply(rides, domain.ViewToggles{})
	expected := []domain.LabelCount{{Label: "Brooklyn", Count: 2}, {Label: "Manhattan", Count: 1}}
	if !reflect.DeepEqual(view.Labels, expected) {
		t.Errorf("Expected %v, got %v", expected, view.Labels)
	}
}

func TestPointsOfInterestAreDensityNames(t *testing.T) {
	catalog := domain.DefaultClusterCatalog()
	for _, name := range catalog.PointsOfInterest {
		if !catalog.Density.Has(name) {
			t.Errorf("Expected %q to be a density cluster name", name)
		}
	}
}
