package domain

import (
	"errors"
	"fmt"
	"sort"
)

// Scheme identifies one of the two clustering schemes carried by the dataset
type Scheme string

const (
	SchemePartition Scheme = "kms"    // KMeans, 5 regions
	SchemeDensity   Scheme = "dbscan" // DBSCAN, 20 regions plus noise
)

// OutlierCode is the DBSCAN noise sentinel
const OutlierCode = -1

// OutlierLabel is the place name every noise point resolves to
const OutlierLabel = "Outliers"

// ClusterTable maps an integer cluster code to a place name
type ClusterTable map[int]string

// Codes returns the table codes in ascending order
func (t ClusterTable) Codes() []int {
	codes := make([]int, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// Names returns the distinct place names ordered by their lowest code
func (t ClusterTable) Names() []string {
	seen := make(map[string]struct{}, len(t))
	names := make([]string, 0, len(t))
	for _, code := range t.Codes() {
		name := t[code]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Has reports whether name is a value of the table
func (t ClusterTable) Has(name string) bool {
	for _, v := range t {
		if v == name {
			return true
		}
	}
	return false
}

// ClusterCatalog holds the immutable label configuration shared by the
// label resolver and the view filter
type ClusterCatalog struct {
	Partition        ClusterTable
	Density          ClusterTable
	PointsOfInterest []string
}

// DefaultClusterCatalog builds the catalog for the New York sample.
// Every call returns fresh tables.
func DefaultClusterCatalog() ClusterCatalog {
	return ClusterCatalog{
		Partition: ClusterTable{
			0: "Manhattan",
			1: "East Queens",
			2: "Brooklyn",
			3: "New Jersey",
			4: "Bronx & West Queens",
		},
		Density: ClusterTable{
			0:           "Manhattan",
			1:           "John F. Kennedy Airport",
			2:           "Newark Liberty Airport",
			3:           "LaGuardia Airport",
			4:           "Newark Liberty Airport",
			5:           "LaGuardia Airport",
			6:           "John F. Kennedy Airport",
			7:           "Brooklyn",
			8:           "Manhattan Bridge View",
			9:           "LaGuardia Airport",
			10:          "Brooklyn",
			11:          "Brooklyn",
			12:          "Brooklyn",
			13:          "Center Blvd",
			14:          "Atlantic Terminal",
			15:          "East Williamsburg",
			16:          "Pioneer Works Center",
			17:          "Brooklyn",
			18:          "Manhattan",
			19:          "Queens Plaza",
			OutlierCode: OutlierLabel,
		},
		PointsOfInterest: []string{
			"John F. Kennedy Airport",
			"Newark Liberty Airport",
			"LaGuardia Airport",
			"Manhattan Bridge View",
			"Center Blvd",
			"Atlantic Terminal",
			"East Williamsburg",
			"Pioneer Works Center",
		},
	}
}

// Validate checks the referential integrity of the catalog
func (c ClusterCatalog) Validate() error {
	if len(c.Partition) == 0 {
		return fmt.Errorf("catalog: %w: %s", ErrEmptyTable, SchemePartition)
	}
	if len(c.Density) == 0 {
		return fmt.Errorf("catalog: %w: %s", ErrEmptyTable, SchemeDensity)
	}
	if c.Density[OutlierCode] != OutlierLabel {
		return fmt.Errorf("catalog: %w", ErrMissingOutlier)
	}
	for _, name := range c.PointsOfInterest {
		if !c.Density.Has(name) {
			return &POIReferenceError{Name: name}
		}
	}
	return nil
}

// Configuration errors
var (
	ErrEmptyTable     = errors.New("cluster table is empty")
	ErrMissingOutlier = errors.New("density table must map -1 to \"Outliers\"")
)

// UnmappedCodeError reports a cluster code absent from its scheme's table
type UnmappedCodeError struct {
	Scheme Scheme
	Code   int
}

func (e *UnmappedCodeError) Error() string {
	return fmt.Sprintf("unmapped %s cluster code %d", e.Scheme, e.Code)
}

// POIReferenceError reports a point of interest that no density cluster resolves to
type POIReferenceError struct {
	Name string
}

func (e *POIReferenceError) Error() string {
	return fmt.Sprintf("catalog: point of interest %q is not a density cluster name", e.Name)
}
