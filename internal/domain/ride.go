package domain

import "time"

// Layouts used by the sample file for the pickup timestamp and date columns
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Column names of the sample file
const (
	ColumnTimestamp = "Date/Time"
	ColumnLat       = "Lat"
	ColumnLon       = "Lon"
	ColumnMonth     = "Month"
	ColumnDate      = "Date"
	ColumnHour      = "Hour"
	ColumnDayOfWeek = "DayofWeek"
	ColumnKMS       = "kms"
	ColumnDBSCAN    = "dbscan"
)

// Columns lists the sample file columns in their original order
var Columns = []string{
	ColumnTimestamp,
	ColumnLat,
	ColumnLon,
	ColumnMonth,
	ColumnDate,
	ColumnHour,
	ColumnDayOfWeek,
	ColumnKMS,
	ColumnDBSCAN,
}

// ColumnDescriptions documents every column for the dataset page
var ColumnDescriptions = map[string]string{
	ColumnTimestamp: "Date and time of pickup",
	ColumnLat:       "Latitude of pickup location",
	ColumnLon:       "Longitude of pickup location",
	ColumnMonth:     "Month of the ride",
	ColumnDate:      "Date of the ride",
	ColumnHour:      "Hour of the ride",
	ColumnDayOfWeek: "Day of week for the ride",
	ColumnKMS:       "Cluster label from KMeans",
	ColumnDBSCAN:    "Cluster label from DBSCAN",
}

// RideRecord is one observed taxi pickup with its precomputed cluster codes
type RideRecord struct {
	PickupTime    time.Time `json:"pickup_time"`
	Date          time.Time `json:"date"`
	Latitude      float64   `json:"lat"`
	Longitude     float64   `json:"lon"`
	Month         int       `json:"month"`
	Hour          int       `json:"hour"`
	DayOfWeek     int       `json:"day_of_week"` // Monday=0
	PartitionCode int       `json:"kms"`
	DensityCode   int       `json:"dbscan"`
}

// LabeledRide is a ride record with both cluster codes resolved to place names
type LabeledRide struct {
	RideRecord
	PartitionLabel string `json:"kms_label"`
	DensityLabel   string `json:"dbscan_label"`
}

// DayOfWeekNames labels DayofWeek values
var DayOfWeekNames = map[int]string{
	0: "Monday",
	1: "Tuesday",
	2: "Wednesday",
	3: "Thursday",
	4: "Friday",
	5: "Saturday",
	6: "Sunday",
}

// MonthNames labels the months covered by the sample
var MonthNames = map[int]string{
	5: "May",
	6: "June",
	7: "July",
	8: "August",
	9: "September",
}
