package signal

import (
	"math"

	"trilat.klederson.com/internal/config"
	"trilat.klederson.com/internal/geometry"
)

// Beacon is a simulated transmitter at a fixed position.
type Beacon struct {
	ID              string
	Position        geometry.Point
	MaxRange        float64 // Meters, negative disables the beacon
	CalibratedPower float64 // RSSI at 1 meter (dBm)
}

// NewBeacon creates a beacon with the default range and calibrated power.
func NewBeacon(id string, position geometry.Point) Beacon {
	return Beacon{
		ID:              id,
		Position:        position,
		MaxRange:        config.MaxRange,
		CalibratedPower: config.CalibratedPower,
	}
}

// RSSI returns the synthetic RSSI seen at distance meters, and false if the
// beacon cannot be heard there.
func (b Beacon) RSSI(distance, pathLossExp float64) (float64, bool) {
	if b.MaxRange < 0 || distance > b.MaxRange {
		return 0, false
	}
	// log10(0) is -Inf, keep co-located readings finite
	distance = math.Max(distance, config.MinDistance)
	return SynthesizeRSSI(b.CalibratedPower, distance, pathLossExp), true
}

// Simulator is a deterministic Source backed by a list of beacons. RSSI is
// an exact function of distance, so EstimateDistance recovers the true
// distance from every record it produces.
type Simulator struct {
	beacons     []Beacon
	pathLossExp float64
}

// NewSimulator creates an empty simulator using pathLossExp both to
// synthesize RSSI and to tag the records it returns.
func NewSimulator(pathLossExp float64) *Simulator {
	return &Simulator{pathLossExp: pathLossExp}
}

// AddBeacon adds a beacon with default range and power.
func (s *Simulator) AddBeacon(id string, position geometry.Point) {
	s.Add(NewBeacon(id, position))
}

// Add adds a fully specified beacon.
func (s *Simulator) Add(b Beacon) {
	s.beacons = append(s.beacons, b)
}

// Beacons returns a copy of the simulated beacons in insertion order.
func (s *Simulator) Beacons() []Beacon {
	out := make([]Beacon, len(s.beacons))
	copy(out, s.beacons)
	return out
}

// PathLossExp returns the exponent used for synthesis.
func (s *Simulator) PathLossExp() float64 {
	return s.pathLossExp
}

// DetectSignals implements Source.
func (s *Simulator) DetectSignals(location geometry.Point) []Record {
	var records []Record
	for _, b := range s.beacons {
		rssi, ok := b.RSSI(b.Position.PlanarDistance(location), s.pathLossExp)
		if !ok {
			continue
		}
		records = append(records, Record{
			BeaconID:        b.ID,
			CalibratedPower: b.CalibratedPower,
			RSSI:            rssi,
			PathLossExp:     s.pathLossExp,
		})
	}
	return records
}
