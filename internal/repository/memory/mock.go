package memory

import (
	"context"
	"time"

	"github.com/nypickups/backend/internal/domain"
)

// MockRepository implements domain.RideRepository for testing/demo mode
type MockRepository struct {
	rides []domain.RideRecord
}

// NewMockRepository creates a repository serving the given rides.
// With no rides it serves a small built-in sample.
func NewMockRepository(rides ...domain.RideRecord) *MockRepository {
	if len(rides) == 0 {
		rides = demoRides()
	}
	return &MockRepository{rides: rides}
}

// LoadRides returns a copy of the stored rides
func (r *MockRepository) LoadRides(ctx context.Context) ([]domain.RideRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.RideRecord, len(r.rides))
	copy(out, r.rides)
	return out, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}

// NewRide builds a ride record from a pickup timestamp, deriving the
// calendar fields the way the sample file encodes them
func NewRide(pickup time.Time, lat, lon float64, kms, dbscan int) domain.RideRecord {
	return domain.RideRecord{
		PickupTime:    pickup,
		Date:          time.Date(pickup.Year(), pickup.Month(), pickup.Day(), 0, 0, 0, 0, time.UTC),
		Latitude:      lat,
		Longitude:     lon,
		Month:         int(pickup.Month()),
		Hour:          pickup.Hour(),
		DayOfWeek:     (int(pickup.Weekday()) + 6) % 7, // Monday=0
		PartitionCode: kms,
		DensityCode:   dbscan,
	}
}

func demoRides() []domain.RideRecord {
	at := func(s string) time.Time {
		t, _ := time.Parse(domain.TimestampLayout, s)
		return t
	}
	return []domain.RideRecord{
		NewRide(at("2014-05-01 00:02:00"), 40.7521, -73.9914, 0, 0),
		NewRide(at("2014-05-03 18:20:00"), 40.6449, -73.7822, 1, 1),
		NewRide(at("2014-06-11 07:45:00"), 40.6895, -74.1745, 3, 2),
		NewRide(at("2014-06-21 13:05:00"), 40.7769, -73.8740, 4, 3),
		NewRide(at("2014-07-04 21:10:00"), 40.6771, -74.0166, 2, 16),
		NewRide(at("2014-07-19 01:30:00"), 40.6782, -73.9442, 2, 7),
		NewRide(at("2014-08-08 09:15:00"), 40.7033, -73.9881, 2, 8),
		NewRide(at("2014-08-23 23:40:00"), 40.7447, -73.9565, 1, 13),
		NewRide(at("2014-09-02 16:55:00"), 40.6842, -73.9776, 2, 14),
		NewRide(at("2014-09-27 03:25:00"), 41.0534, -73.5387, 4, -1),
	}
}
