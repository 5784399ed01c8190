package detector

import (
	"io"
	"log/slog"
	"time"

	"trilat.klederson.com/internal/geometry"
	"trilat.klederson.com/internal/signal"
)

// Detector samples a signal source at its current position and keeps every
// sample in an append-only history.
type Detector struct {
	id          string
	position    geometry.Point
	source      signal.Source
	pathLossExp float64
	history     []*Snapshot

	now func() time.Time
	log *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithClock sets the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) { d.now = now }
}

// WithLogger sets the logger. Detectors are silent by default.
func WithLogger(log *slog.Logger) Option {
	return func(d *Detector) { d.log = log }
}

// WithPathLossExp sets the exponent logged with every reading, overriding
// the one reported by the source.
func WithPathLossExp(n float64) Option {
	return func(d *Detector) { d.pathLossExp = n }
}

// New creates a detector at start listening to source.
func New(id string, start geometry.Point, source signal.Source, opts ...Option) *Detector {
	d := &Detector{
		id:       id,
		position: start,
		source:   source,
		now:      time.Now,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the detector id.
func (d *Detector) ID() string {
	return d.id
}

// Position returns the current position.
func (d *Detector) Position() geometry.Point {
	return d.position
}

// CheckSignals samples the source at the current position and appends the
// resulting snapshot to the history.
func (d *Detector) CheckSignals() *Snapshot {
	snap := NewSnapshot(d.id, d.position, d.now())
	for _, r := range d.source.DetectSignals(d.position) {
		if d.pathLossExp != 0 {
			r.PathLossExp = d.pathLossExp
		}
		snap.LogRecord(r)
	}
	d.history = append(d.history, snap)

	d.log.Debug("checked signals",
		"detector", d.id,
		"position", d.position.String(),
		"signals", snap.Len(),
	)
	return snap
}

// Move translates the detector by displacement.
func (d *Detector) Move(displacement geometry.Point) {
	d.position = d.position.Add(displacement)
}

// Run samples and moves steps times.
func (d *Detector) Run(steps int, displacement geometry.Point) {
	for i := 0; i < steps; i++ {
		d.CheckSignals()
		d.Move(displacement)
	}
}

// History returns the snapshots taken so far, oldest first.
func (d *Detector) History() []*Snapshot {
	out := make([]*Snapshot, len(d.history))
	copy(out, d.history)
	return out
}
