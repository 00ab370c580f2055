package dashboard

import (
	"obd-dashboard.klederson.com/internal/gauge"
	"obd-dashboard.klederson.com/internal/telemetry"
)

// Page is one screen of the dashboard.
type Page int

const (
	PageMain Page = iota
	PageTemperatures
	PageFuelAir
	PageDiagnostics
	pageCount
)

var pageTitles = [pageCount]string{"MAIN", "TEMPERATURES", "FUEL & AIR", "DIAGNOSTICS"}

func (p Page) String() string {
	if p < 0 || p >= pageCount {
		return "UNKNOWN"
	}
	return pageTitles[p]
}

// Next cycles to the following page, wrapping after the last.
func (p Page) Next() Page {
	return (p + 1) % pageCount
}

// Pages lists every page in display order.
func Pages() []Page {
	return []Page{PageMain, PageTemperatures, PageFuelAir, PageDiagnostics}
}

// GaugeDef binds a gauge face to the metric that drives it.
type GaugeDef struct {
	Metric telemetry.Metric
	Spec   gauge.Spec
}

var pageGauges = map[Page][]GaugeDef{
	PageMain: {
		{telemetry.Speed, gauge.MustSpec("SPEED", 0, 200, "km/h")},
		{telemetry.RPM, gauge.MustSpec("RPM", 0, 8000, "rpm")},
		{telemetry.Throttle, gauge.MustSpec("THROTTLE", 0, 100, "%")},
	},
	PageTemperatures: {
		{telemetry.CoolantTemp, gauge.MustSpec("COOLANT", -40, 120, "°C")},
		{telemetry.IntakeTemp, gauge.MustSpec("INTAKE AIR", -40, 80, "°C")},
		{telemetry.OilTemp, gauge.MustSpec("OIL TEMP", 0, 150, "°C")},
	},
	PageFuelAir: {
		{telemetry.FuelPressure, gauge.MustSpec("FUEL PRESSURE", 0, 600, "kPa")},
		{telemetry.FuelRate, gauge.MustSpec("FUEL RATE", 0, 50, "L/h")},
		{telemetry.IntakePressure, gauge.MustSpec("INTAKE PRESS", 0, 300, "kPa")},
	},
}

// Gauges returns the gauges shown on p, in layout order.
func (p Page) Gauges() []GaugeDef {
	return pageGauges[p]
}
