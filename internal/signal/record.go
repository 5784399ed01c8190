package signal

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned when the path loss model is asked to work
// with inputs it cannot handle, such as a zero path loss exponent.
var ErrInvalidParameter = errors.New("invalid parameter")

// Record is a single reading of a beacon, together with what is needed to
// turn it into a distance.
type Record struct {
	BeaconID        string
	CalibratedPower float64 // RSSI at 1 meter (dBm)
	RSSI            float64 // Measured RSSI (dBm)
	PathLossExp     float64 // Path loss exponent (N)
}

// Distance estimates the distance to the beacon in meters.
func (r Record) Distance() (float64, error) {
	d, err := EstimateDistance(r.CalibratedPower, r.RSSI, r.PathLossExp)
	if err != nil {
		return 0, fmt.Errorf("beacon %q: %w", r.BeaconID, err)
	}
	return d, nil
}

// EstimateDistance estimates distance from RSSI using the log-distance path loss model.
// Formula: d = sqrt(10^((calibratedPower - rssi) / (-10 * n)))
func EstimateDistance(calibratedPower, rssi, pathLossExp float64) (float64, error) {
	if pathLossExp == 0 || !finite(pathLossExp) {
		return 0, fmt.Errorf("%w: path loss exponent %v", ErrInvalidParameter, pathLossExp)
	}
	if !finite(calibratedPower) || !finite(rssi) {
		return 0, fmt.Errorf("%w: power %v dBm, rssi %v dBm", ErrInvalidParameter, calibratedPower, rssi)
	}

	exp := (calibratedPower - rssi) / (-10 * pathLossExp)
	d := math.Sqrt(math.Pow(10, exp))
	if math.IsInf(d, 0) {
		return 0, fmt.Errorf("%w: distance overflows for power %v dBm, rssi %v dBm, exponent %v",
			ErrInvalidParameter, calibratedPower, rssi, pathLossExp)
	}
	return d, nil
}

// SynthesizeRSSI is the inverse of EstimateDistance: the RSSI a beacon with the
// given calibrated power would show at distance meters.
func SynthesizeRSSI(calibratedPower, distance, pathLossExp float64) float64 {
	return calibratedPower + 10*pathLossExp*math.Log10(distance*distance)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
