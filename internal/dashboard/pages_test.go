package dashboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"obd-dashboard.klederson.com/internal/dashboard"
)

func TestPageNextWraps(t *testing.T) {
	assert.Equal(t, dashboard.PageTemperatures, dashboard.PageMain.Next())
	assert.Equal(t, dashboard.PageDiagnostics, dashboard.PageFuelAir.Next())
	assert.Equal(t, dashboard.PageMain, dashboard.PageDiagnostics.Next())
}

func TestPageGauges(t *testing.T) {
	assert.Len(t, dashboard.PageMain.Gauges(), 3)
	assert.Len(t, dashboard.PageTemperatures.Gauges(), 3)
	assert.Len(t, dashboard.PageFuelAir.Gauges(), 3)
	assert.Empty(t, dashboard.PageDiagnostics.Gauges())

	assert.Equal(t, "FUEL & AIR", dashboard.PageFuelAir.String())
	assert.Equal(t, "UNKNOWN", dashboard.Page(9).String())
}
