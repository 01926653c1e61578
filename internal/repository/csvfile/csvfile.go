package csvfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/klauspost/compress/zstd"
	"github.com/nypickups/backend/internal/domain"
)

// Repository implements domain.RideRepository over the sample CSV file.
// Paths ending in .zst are zstd-compressed.
type Repository struct {
	path string
}

// NewRepository creates a CSV ride repository
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// LoadRides reads every ride from the file
func (r *Repository) LoadRides(ctx context.Context) ([]domain.RideRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("csvfile: failed to open %s: %w", r.path, err)
	}
	defer file.Close()

	var src io.Reader = bufio.NewReaderSize(file, 1024*1024)
	if strings.HasSuffix(r.path, ".zst") {
		dec, err := zstd.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("csvfile: failed to create zstd reader: %w", err)
		}
		defer dec.Close()
		src = dec
	}

	return ParseRides(src)
}

// Health checks the file is readable
func (r *Repository) Health(ctx context.Context) error {
	info, err := os.Stat(r.path)
	if err != nil {
		return fmt.Errorf("csvfile: health check failed: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("csvfile: health check failed: %s is a directory", r.path)
	}
	return nil
}

var columnTypes = map[string]series.Type{
	domain.ColumnTimestamp: series.String,
	domain.ColumnDate:      series.String,
	domain.ColumnLat:       series.Float,
	domain.ColumnLon:       series.Float,
	domain.ColumnMonth:     series.Int,
	domain.ColumnHour:      series.Int,
	domain.ColumnDayOfWeek: series.Int,
	domain.ColumnKMS:       series.Int,
	domain.ColumnDBSCAN:    series.Int,
}

// ParseRides decodes ride records from CSV with a header row.
// Columns are matched by name; extra columns are ignored.
func ParseRides(src io.Reader) ([]domain.RideRecord, error) {
	df := dataframe.ReadCSV(src,
		dataframe.HasHeader(true),
		dataframe.WithTypes(columnTypes),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("csvfile: failed to read csv: %w", df.Err)
	}

	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	for _, name := range domain.Columns {
		if !present[name] {
			return nil, fmt.Errorf("csvfile: missing column %q", name)
		}
	}

	stamps := df.Col(domain.ColumnTimestamp).Records()
	dates := df.Col(domain.ColumnDate).Records()
	lat := df.Col(domain.ColumnLat).Float()
	lon := df.Col(domain.ColumnLon).Float()

	ints := make(map[string][]int, 5)
	for _, name := range []string{domain.ColumnMonth, domain.ColumnHour, domain.ColumnDayOfWeek, domain.ColumnKMS, domain.ColumnDBSCAN} {
		values, err := df.Col(name).Int()
		if err != nil {
			return nil, fmt.Errorf("csvfile: column %q: %w", name, err)
		}
		ints[name] = values
	}

	rides := make([]domain.RideRecord, df.Nrow())
	for i := range rides {
		pickup, err := time.Parse(domain.TimestampLayout, stamps[i])
		if err != nil {
			return nil, fmt.Errorf("csvfile: row %d: invalid %s %q: %w", i, domain.ColumnTimestamp, stamps[i], err)
		}
		date, err := time.Parse(domain.DateLayout, dates[i])
		if err != nil {
			return nil, fmt.Errorf("csvfile: row %d: invalid %s %q: %w", i, domain.ColumnDate, dates[i], err)
		}
		if math.IsNaN(lat[i]) || math.IsNaN(lon[i]) {
			return nil, fmt.Errorf("csvfile: row %d: missing coordinates", i)
		}

		rides[i] = domain.RideRecord{
			PickupTime:    pickup,
			Date:          date,
			Latitude:      lat[i],
			Longitude:     lon[i],
			Month:         ints[domain.ColumnMonth][i],
			Hour:          ints[domain.ColumnHour][i],
			DayOfWeek:     ints[domain.ColumnDayOfWeek][i],
			PartitionCode: ints[domain.ColumnKMS][i],
			DensityCode:   ints[domain.ColumnDBSCAN][i],
		}
	}

	return rides, nil
}
