package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nypickups/backend/internal/domain"
	_ "modernc.org/sqlite"
)

// Repository implements domain.RideRepository over a SQLite file holding a
// taxi_pickups table. Timestamps and dates are stored as text in the same
// layouts as the CSV sample.
type Repository struct {
	db *sql.DB
}

// Open opens the database file. The repository only ever reads from it.
func Open(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}
	db.SetMaxOpenConns(4)
	return &Repository{db: db}, nil
}

// NewRepository wraps an existing connection
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Close releases the connection pool
func (r *Repository) Close() error {
	return r.db.Close()
}

// LoadRides reads every pickup in rowid order
func (r *Repository) LoadRides(ctx context.Context) ([]domain.RideRecord, error) {
	query := `
		SELECT pickup_time, pickup_date, lat, lon, month, hour,
			   day_of_week, kms, dbscan
		FROM taxi_pickups
		ORDER BY rowid
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query rides: %w", err)
	}
	defer rows.Close()

	var results []domain.RideRecord
	for rows.Next() {
		var (
			ride         domain.RideRecord
			pickup, date string
		)
		err := rows.Scan(
			&pickup, &date, &ride.Latitude, &ride.Longitude, &ride.Month, &ride.Hour,
			&ride.DayOfWeek, &ride.PartitionCode, &ride.DensityCode,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan ride row: %w", err)
		}
		if ride.PickupTime, err = time.Parse(domain.TimestampLayout, pickup); err != nil {
			return nil, fmt.Errorf("sqlite: invalid pickup_time %q: %w", pickup, err)
		}
		if ride.Date, err = time.Parse(domain.DateLayout, date); err != nil {
			return nil, fmt.Errorf("sqlite: invalid pickup_date %q: %w", date, err)
		}
		results = append(results, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to read rides: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *Repository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: health check failed: %w", err)
	}
	return nil
}
