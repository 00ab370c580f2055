package config

import "time"

const (
	// Gauge geometry
	GaugeStartDeg    = 225.0 // Angle of the minimum value (math convention, 0=east, counter-clockwise)
	GaugeSweepDeg    = 270.0 // Clockwise sweep from minimum to maximum
	GaugeTickCount   = 9     // Major ticks including both ends
	RedrawThreshold  = 0.5   // Minimum change in a clamped value that triggers a repaint
	AspectRatio      = 0.5   // Terminal char aspect correction (chars are ~2:1 tall)
	HistoryLength    = 120   // Samples kept for sparklines (12s at the default refresh)
	DefaultMaxMAF    = 255.0 // g/s, used when the adapter reports no maximum

	// Refresh
	DefaultRefreshInterval = 100 * time.Millisecond
	TargetFPS              = 30
	RuntimeStep            = 0.1 // Seconds added per simulated tick
	TimeSinceClearStep     = 0.1
	DistanceStepMin        = 0.01 // km per simulated tick
	DistanceStepMax        = 0.05

	// Adapter
	DefaultHost           = "192.168.0.10"
	DefaultPort           = 35000
	DefaultQueryTimeout   = 2 * time.Second
	DefaultConnectTimeout = 5 * time.Second
	DefaultCommandsFile   = "data/commands.json"

	// Window
	WindowWidth    = 1024
	WindowHeight   = 600
	GaugePixelSize = 200 // Side of one rendered gauge face in the window

	// App
	AppName    = "OBD-DASH"
	AppVersion = "1.0"
)
