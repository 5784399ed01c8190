package signal

import "trilat.klederson.com/internal/geometry"

// Source reports the beacon signals observable at a location.
// An empty result means nothing is in range.
type Source interface {
	DetectSignals(location geometry.Point) []Record
}
