package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveDensityView(t *testing.T) {
	before := testutil.ToFloat64(DensityViewsTotal.WithLabelValues("true", "false"))

	ObserveDensityView(true, false, 12)
	ObserveDensityView(true, false, 0)

	after := testutil.ToFloat64(DensityViewsTotal.WithLabelValues("true", "false"))
	if after-before != 2 {
		t.Errorf("Expected 2 new density views, got %f", after-before)
	}
}
