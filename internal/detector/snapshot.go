package detector

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"trilat.klederson.com/internal/geometry"
	"trilat.klederson.com/internal/signal"
	"trilat.klederson.com/internal/trilat"
)

// ErrMissingSignal is returned when an intersection is requested for a beacon
// that one of the snapshots never heard.
var ErrMissingSignal = errors.New("missing signal")

// Snapshot holds every signal one detector heard at one position and time.
type Snapshot struct {
	DetectorID string
	Position   geometry.Point
	Timestamp  time.Time

	signals map[string]signal.Record
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot(detectorID string, position geometry.Point, timestamp time.Time) *Snapshot {
	return &Snapshot{
		DetectorID: detectorID,
		Position:   position,
		Timestamp:  timestamp,
		signals:    make(map[string]signal.Record),
	}
}

// LogSignal records a reading of beaconID. A later reading of the same beacon
// replaces the earlier one: last write wins.
func (s *Snapshot) LogSignal(beaconID string, calibratedPower, rssi, pathLossExp float64) {
	s.LogRecord(signal.Record{
		BeaconID:        beaconID,
		CalibratedPower: calibratedPower,
		RSSI:            rssi,
		PathLossExp:     pathLossExp,
	})
}

// LogRecord records r, replacing any earlier record for the same beacon.
func (s *Snapshot) LogRecord(r signal.Record) {
	s.signals[r.BeaconID] = r
}

// Signal returns the record for beaconID.
func (s *Snapshot) Signal(beaconID string) (signal.Record, bool) {
	r, ok := s.signals[beaconID]
	return r, ok
}

// Signals returns all records sorted by beacon id.
func (s *Snapshot) Signals() []signal.Record {
	result := make([]signal.Record, 0, len(s.signals))
	for _, r := range s.signals {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].BeaconID < result[j].BeaconID
	})
	return result
}

// Len returns the number of beacons heard.
func (s *Snapshot) Len() int {
	return len(s.signals)
}

// Intersects intersects the distance circles for beaconID seen from this
// snapshot and from other. Both snapshots must have heard the beacon.
// An empty result with a nil error means the circles do not meet.
func (s *Snapshot) Intersects(beaconID string, other *Snapshot) ([]geometry.Point, error) {
	s0, ok := s.signals[beaconID]
	if !ok {
		return nil, fmt.Errorf("%w: beacon %q not heard by %q", ErrMissingSignal, beaconID, s.DetectorID)
	}
	s1, ok := other.signals[beaconID]
	if !ok {
		return nil, fmt.Errorf("%w: beacon %q not heard by %q", ErrMissingSignal, beaconID, other.DetectorID)
	}

	r0, err := s0.Distance()
	if err != nil {
		return nil, err
	}
	r1, err := s1.Distance()
	if err != nil {
		return nil, err
	}

	return trilat.Intersect(s.Position, r0, other.Position, r1)
}

// SharedBeacons returns the ids of beacons heard by both snapshots, sorted.
func (s *Snapshot) SharedBeacons(other *Snapshot) []string {
	var ids []string
	for id := range s.signals {
		if _, ok := other.signals[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
