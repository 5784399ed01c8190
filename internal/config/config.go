package config

const (
	// RSSI to distance estimation
	CalibratedPower = -59.0 // iBeacon RSSI at 1 meter (dBm)
	MaxPower        = -72.0 // Weakest RSSI a dummy beacon is expected to emit (dBm)
	PathLossExp     = 2.5   // Path loss exponent (N), free space is ~2
	MinDistance     = 0.1   // Closest distance the simulator will synthesize (m)

	// Dummy beacons
	MaxRange = 10.0 // Beacon range in meters, negative disables the beacon

	// Simulation
	DefaultSteps = 30

	// Plot
	AspectRatio = 0.5 // Terminal char aspect correction (chars are ~2:1 tall)

	// Viewer
	HistoryLen = 40 // Distance samples kept per beacon for the sparkline

	// App
	AppName    = "TRILAT"
	AppVersion = "1.0"
)
