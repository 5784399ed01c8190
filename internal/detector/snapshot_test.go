package detector

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trilat.klederson.com/internal/geometry"
	"trilat.klederson.com/internal/signal"
)

const (
	firstBeacon  = "a"
	secondBeacon = "b"
)

// fixedSnapshots builds two snapshots where beacon "a" sits exactly 3m from
// the first position and 4m from the second.
func fixedSnapshots() (*Snapshot, *Snapshot) {
	at := time.Unix(0, 0)
	a := NewSnapshot("first", geometry.XY(1, 2), at)
	b := NewSnapshot("second", geometry.XY(3, -1), at)

	a.LogSignal(firstBeacon, -10*math.Log10(3*3), 0, 1)
	b.LogSignal(firstBeacon, -10*math.Log10(4*4), 0, 1)
	return a, b
}

func TestSnapshot_EstimateDistance(t *testing.T) {
	a, b := fixedSnapshots()

	s0, ok := a.Signal(firstBeacon)
	require.True(t, ok)
	s1, ok := b.Signal(firstBeacon)
	require.True(t, ok)

	d0, err := s0.Distance()
	require.NoError(t, err)
	d1, err := s1.Distance()
	require.NoError(t, err)

	assert.InDelta(t, 3, d0, 1e-12)
	assert.InDelta(t, 4, d1, 1e-12)
}

func TestSnapshot_Intersects(t *testing.T) {
	a, b := fixedSnapshots()

	points, err := a.Intersects(firstBeacon, b)
	require.NoError(t, err)
	require.Len(t, points, 2)
	for _, p := range points {
		assert.InDelta(t, 3, p.PlanarDistance(a.Position), 1e-9)
		assert.InDelta(t, 4, p.PlanarDistance(b.Position), 1e-9)
	}

	t.Run("symmetric", func(t *testing.T) {
		reversed, err := b.Intersects(firstBeacon, a)
		require.NoError(t, err)
		require.Len(t, reversed, 2)
		if reversed[0].PlanarDistance(points[0]) > 1e-9 {
			reversed[0], reversed[1] = reversed[1], reversed[0]
		}
		for i := range points {
			assert.InDelta(t, points[i].X, reversed[i].X, 1e-9)
			assert.InDelta(t, points[i].Y, reversed[i].Y, 1e-9)
		}
	})
}

func TestSnapshot_IntersectsMissingSignal(t *testing.T) {
	a, b := fixedSnapshots()
	a.LogSignal(secondBeacon, -59, -60, 2)

	_, err := a.Intersects(secondBeacon, b)
	assert.ErrorIs(t, err, ErrMissingSignal)
	assert.Contains(t, err.Error(), "second")

	_, err = b.Intersects(secondBeacon, a)
	assert.ErrorIs(t, err, ErrMissingSignal)

	_, err = a.Intersects("nope", b)
	assert.ErrorIs(t, err, ErrMissingSignal)
	assert.Contains(t, err.Error(), "first")
}

func TestSnapshot_IntersectsInvalidExponent(t *testing.T) {
	a, b := fixedSnapshots()
	a.LogSignal(firstBeacon, -59, -60, 0)

	_, err := a.Intersects(firstBeacon, b)
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)
}

func TestSnapshot_IntersectsNoIntersection(t *testing.T) {
	at := time.Unix(0, 0)
	a := NewSnapshot("a", geometry.XY(0, 0), at)
	b := NewSnapshot("b", geometry.XY(20, 0), at)
	a.LogSignal(firstBeacon, -10*math.Log10(2*2), 0, 1)
	b.LogSignal(firstBeacon, -10*math.Log10(2*2), 0, 1)

	points, err := a.Intersects(firstBeacon, b)
	assert.NoError(t, err)
	assert.Empty(t, points)
}

func TestSnapshot_LastWriteWins(t *testing.T) {
	s := NewSnapshot("d", geometry.XY(0, 0), time.Unix(0, 0))
	s.LogSignal(firstBeacon, -59, -70, 2.5)
	s.LogSignal(firstBeacon, -59, -65, 2)

	assert.Equal(t, 1, s.Len())
	r, ok := s.Signal(firstBeacon)
	require.True(t, ok)
	assert.Equal(t, signal.Record{BeaconID: firstBeacon, CalibratedPower: -59, RSSI: -65, PathLossExp: 2}, r)
}

func TestSnapshot_SignalsSorted(t *testing.T) {
	s := NewSnapshot("d", geometry.XY(0, 0), time.Unix(0, 0))
	s.LogSignal("zulu", -59, -70, 2.5)
	s.LogSignal("alpha", -59, -70, 2.5)
	s.LogSignal("mike", -59, -70, 2.5)

	var ids []string
	for _, r := range s.Signals() {
		ids = append(ids, r.BeaconID)
	}
	assert.Equal(t, []string{"alpha", "mike", "zulu"}, ids)
}

func TestSnapshot_SharedBeacons(t *testing.T) {
	a, b := fixedSnapshots()
	a.LogSignal("x", -59, -60, 2)
	b.LogSignal("x", -59, -60, 2)
	b.LogSignal("y", -59, -60, 2)

	assert.Equal(t, []string{firstBeacon, "x"}, a.SharedBeacons(b))
	assert.Equal(t, a.SharedBeacons(b), b.SharedBeacons(a))
}
