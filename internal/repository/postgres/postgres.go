package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nypickups/backend/internal/domain"
)

// PostgresRepository implements domain.RideRepository.
// It expects a taxi_pickups table:
//
//	CREATE TABLE taxi_pickups (
//		id          BIGSERIAL PRIMARY KEY,
//		pickup_time TIMESTAMP NOT NULL,
//		pickup_date DATE NOT NULL,
//		lat         DOUBLE PRECISION NOT NULL,
//		lon         DOUBLE PRECISION NOT NULL,
//		month       INTEGER NOT NULL,
//		hour        INTEGER NOT NULL,
//		day_of_week INTEGER NOT NULL,
//		kms         INTEGER NOT NULL,
//		dbscan      INTEGER NOT NULL
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// LoadRides reads every pickup in insertion order
func (r *PostgresRepository) LoadRides(ctx context.Context) ([]domain.RideRecord, error) {
	query := `
		SELECT pickup_time, pickup_date, lat, lon, month, hour,
			   day_of_week, kms, dbscan
		FROM taxi_pickups
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query rides: %w", err)
	}
	defer rows.Close()

	var results []domain.RideRecord
	for rows.Next() {
		var ride domain.RideRecord
		err := rows.Scan(
			&ride.PickupTime, &ride.Date, &ride.Latitude, &ride.Longitude, &ride.Month, &ride.Hour,
			&ride.DayOfWeek, &ride.PartitionCode, &ride.DensityCode,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan ride row: %w", err)
		}
		results = append(results, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read rides: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
