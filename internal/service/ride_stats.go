package service

import (
	"math"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/nypickups/backend/internal/domain"
	"github.com/nypickups/backend/pkg/utils"
)

// ridesPerDate counts rides per calendar date in date order
func ridesPerDate(rides []domain.LabeledRide) []domain.DateCount {
	counts := make(map[string]int)
	for _, r := range rides {
		counts[r.Date.Format(domain.DateLayout)]++
	}

	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	// ISO dates sort lexically
	sort.Strings(dates)

	result := make([]domain.DateCount, len(dates))
	for i, d := range dates {
		result[i] = domain.DateCount{Date: d, Count: counts[d]}
	}
	return result
}

// bucketize counts rides per integer key. Every key in fixed is present even
// with a zero count; keys outside fixed are appended in ascending order.
func bucketize(rides []domain.LabeledRide, key func(domain.RideRecord) int, fixed []int, names map[int]string) []domain.Bucket {
	counts := make(map[int]int, len(fixed))
	for _, r := range rides {
		counts[key(r.RideRecord)]++
	}

	keys := append([]int(nil), fixed...)
	known := make(map[int]bool, len(fixed))
	for _, k := range fixed {
		known[k] = true
	}
	var extra []int
	for k := range counts {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Ints(extra)
	keys = append(keys, extra...)

	buckets := make([]domain.Bucket, len(keys))
	for i, k := range keys {
		label, ok := names[k]
		if !ok {
			label = strconv.Itoa(k)
		}
		buckets[i] = domain.Bucket{Key: k, Label: label, Count: counts[k]}
	}
	return buckets
}

func intRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// rideFrame lays the numeric columns of the rides out as a gota dataframe
func rideFrame(rides []domain.LabeledRide) dataframe.DataFrame {
	n := len(rides)
	lat := make([]float64, n)
	lon := make([]float64, n)
	month := make([]int, n)
	hour := make([]int, n)
	dow := make([]int, n)
	kms := make([]int, n)
	dbscan := make([]int, n)
	for i, r := range rides {
		lat[i] = r.Latitude
		lon[i] = r.Longitude
		month[i] = r.Month
		hour[i] = r.Hour
		dow[i] = r.DayOfWeek
		kms[i] = r.PartitionCode
		dbscan[i] = r.DensityCode
	}

	return dataframe.New(
		series.New(lat, series.Float, domain.ColumnLat),
		series.New(lon, series.Float, domain.ColumnLon),
		series.New(month, series.Int, domain.ColumnMonth),
		series.New(hour, series.Int, domain.ColumnHour),
		series.New(dow, series.Int, domain.ColumnDayOfWeek),
		series.New(kms, series.Int, domain.ColumnKMS),
		series.New(dbscan, series.Int, domain.ColumnDBSCAN),
	)
}

// describeFrame computes pandas-style descriptive statistics per column
func describeFrame(df dataframe.DataFrame) []domain.ColumnStats {
	if df.Nrow() == 0 {
		return nil
	}

	stats := make([]domain.ColumnStats, 0, df.Ncol())
	for _, name := range df.Names() {
		col := df.Col(name)
		stats = append(stats, domain.ColumnStats{
			Column: name,
			Count:  col.Len(),
			Mean:   finite(col.Mean()),
			Std:    finite(col.StdDev()),
			Min:    finite(col.Min()),
			P25:    finite(col.Quantile(0.25)),
			P50:    finite(col.Median()),
			P75:    finite(col.Quantile(0.75)),
			Max:    finite(col.Max()),
		})
	}
	return stats
}

// missingCounts counts NaN cells per column
func missingCounts(df dataframe.DataFrame) map[string]int {
	missing := make(map[string]int, df.Ncol())
	for _, name := range df.Names() {
		n := 0
		for _, nan := range df.Col(name).IsNaN() {
			if nan {
				n++
			}
		}
		missing[name] = n
	}
	return missing
}

// finite rounds v and maps NaN/Inf to zero so the value encodes as JSON
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return utils.RoundTo(v, 6)
}
