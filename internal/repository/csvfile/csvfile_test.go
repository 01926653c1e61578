package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

const sampleCSV = `Date/Time,Lat,Lon,Month,Date,Hour,DayofWeek,kms,dbscan
2014-05-01 00:02:00,40.7521,-73.9914,5,2014-05-01,0,3,0,0
2014-06-14 17:45:00,40.6449,-73.7822,6,2014-06-14,17,5,1,1
2014-09-30 23:59:00,41.2000,-74.5000,9,2014-09-30,23,1,3,-1
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestParseRides(t *testing.T) {
	rides, err := ParseRides(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Failed to parse rides: %v", err)
	}
	if len(rides) != 3 {
		t.Fatalf("Expected 3 rides, got %d", len(rides))
	}

	first := rides[0]
	if got := first.PickupTime.Format("2006-01-02 15:04:05"); got != "2014-05-01 00:02:00" {
		t.Errorf("Expected pickup 2014-05-01 00:02:00, got %s", got)
	}
	if first.Latitude != 40.7521 || first.Longitude != -73.9914 {
		t.Errorf("Expected (40.7521,-73.9914), got (%f,%f)", first.Latitude, first.Longitude)
	}
	if first.DayOfWeek != 3 {
		t.Errorf("Expected day of week 3, got %d", first.DayOfWeek)
	}

	second := rides[1]
	if second.Hour != 17 || second.Month != 6 {
		t.Errorf("Expected hour 17 month 6, got hour %d month %d", second.Hour, second.Month)
	}
	if got := second.Date.Format("2006-01-02"); got != "2014-06-14" {
		t.Errorf("Expected date 2014-06-14, got %s", got)
	}

	last := rides[2]
	if last.DensityCode != -1 {
		t.Errorf("Expected dbscan code -1, got %d", last.DensityCode)
	}
	if last.PartitionCode != 3 {
		t.Errorf("Expected kms code 3, got %d", last.PartitionCode)
	}
}

func TestParseRidesColumnOrder(t *testing.T) {
	reordered := `dbscan,kms,Lat,Lon,Date/Time,Date,Month,Hour,DayofWeek,extra
16,2,40.6771,-74.0166,2014-07-04 21:10:00,2014-07-04,7,21,4,x
`
	rides, err := ParseRides(strings.NewReader(reordered))
	if err != nil {
		t.Fatalf("Failed to parse rides: %v", err)
	}
	if len(rides) != 1 {
		t.Fatalf("Expected 1 ride, got %d", len(rides))
	}
	if rides[0].DensityCode != 16 || rides[0].PartitionCode != 2 {
		t.Errorf("Expected codes (2,16), got (%d,%d)", rides[0].PartitionCode, rides[0].DensityCode)
	}
}

func TestParseRidesMissingColumn(t *testing.T) {
	noDBSCAN := `Date/Time,Lat,Lon,Month,Date,Hour,DayofWeek,kms
2014-05-01 00:02:00,40.7521,-73.9914,5,2014-05-01,0,3,0
`
	if _, err := ParseRides(strings.NewReader(noDBSCAN)); err == nil {
		t.Error("Expected an error for a missing dbscan column")
	}
}

func TestParseRidesBadTimestamp(t *testing.T) {
	bad := `Date/Time,Lat,Lon,Month,Date,Hour,DayofWeek,kms,dbscan
05/01/2014 0:02,40.7521,-73.9914,5,2014-05-01,0,3,0,0
`
	if _, err := ParseRides(strings.NewReader(bad)); err == nil {
		t.Error("Expected an error for a non ISO timestamp")
	}
}

func TestLoadRides(t *testing.T) {
	path := writeFile(t, "rides.csv", []byte(sampleCSV))
	repo := NewRepository(path)

	if err := repo.Health(context.Background()); err != nil {
		t.Fatalf("Expected healthy repository, got %v", err)
	}
	rides, err := repo.LoadRides(context.Background())
	if err != nil {
		t.Fatalf("Failed to load rides: %v", err)
	}
	if len(rides) != 3 {
		t.Errorf("Expected 3 rides, got %d", len(rides))
	}
}

func TestLoadRidesCompressed(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("Failed to create zstd writer: %v", err)
	}
	compressed := enc.EncodeAll([]byte(sampleCSV), nil)
	enc.Close()

	path := writeFile(t, "rides.csv.zst", compressed)
	rides, err := NewRepository(path).LoadRides(context.Background())
	if err != nil {
		t.Fatalf("Failed to load compressed rides: %v", err)
	}
	if len(rides) != 3 {
		t.Errorf("Expected 3 rides, got %d", len(rides))
	}
}

func TestLoadRidesMissingFile(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := repo.LoadRides(context.Background()); err == nil {
		t.Error("Expected an error for a missing file")
	}
	if err := repo.Health(context.Background()); err == nil {
		t.Error("Expected health check to fail for a missing file")
	}
}
