// Package sim drives a scenario: it builds the simulated beacons and the
// detectors, runs them, and intersects every pair of snapshots that share a
// beacon.
package sim

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"trilat.klederson.com/internal/config"
	"trilat.klederson.com/internal/detector"
	"trilat.klederson.com/internal/geometry"
	"trilat.klederson.com/internal/signal"
	"trilat.klederson.com/internal/trilat"
)

// PairKind tells how the two snapshots of an estimate relate.
type PairKind int

const (
	// PairConsecutive pairs two successive samples of one detector.
	PairConsecutive PairKind = iota
	// PairCross pairs samples of two detectors taken at the same step.
	PairCross
)

func (k PairKind) String() string {
	if k == PairCross {
		return "cross"
	}
	return "consecutive"
}

// Estimate is the intersection of one beacon's distance circles seen from
// two snapshots.
type Estimate struct {
	Step     int
	BeaconID string
	Kind     PairKind
	From, To *detector.Snapshot
	Points   []geometry.Point // empty when the circles do not meet
}

// Midpoint returns the centre of the candidate points.
func (e Estimate) Midpoint() (geometry.Point, bool) {
	return trilat.Midpoint(e.Points)
}

// Result is a finished simulation.
type Result struct {
	Scenario  config.Scenario
	Beacons   []signal.Beacon
	Detectors []*detector.Detector
	Estimates []Estimate
}

// EstimatesFor returns the estimates for one beacon, in step order.
func (r *Result) EstimatesFor(beaconID string) []Estimate {
	var out []Estimate
	for _, e := range r.Estimates {
		if e.BeaconID == beaconID {
			out = append(out, e)
		}
	}
	return out
}

// Steps returns the number of samples each detector took.
func (r *Result) Steps() int {
	return r.Scenario.Steps
}

// Runner runs scenarios.
type Runner struct {
	scenario config.Scenario
	now      func() time.Time
	log      *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock sets the clock handed to every detector.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithLogger sets the logger for the runner and its detectors.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) { r.log = log }
}

// New creates a runner for scenario.
func New(scenario config.Scenario, opts ...Option) (*Runner, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		scenario: scenario,
		now:      time.Now,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes the scenario and pairs up the snapshots.
func (r *Runner) Run() (*Result, error) {
	sc := r.scenario

	source := signal.NewSimulator(sc.PathLossExp)
	for _, b := range sc.Beacons {
		source.Add(signal.Beacon{
			ID:              b.ID,
			Position:        b.Position,
			MaxRange:        b.Range(),
			CalibratedPower: b.Power(),
		})
	}

	detectors := make([]*detector.Detector, 0, len(sc.Detectors))
	for _, spec := range sc.Detectors {
		opts := []detector.Option{
			detector.WithClock(r.now),
			detector.WithLogger(r.log),
		}
		if sc.EstimateExponent != nil {
			opts = append(opts, detector.WithPathLossExp(*sc.EstimateExponent))
		}
		d := detector.New(spec.ID, spec.Start, source, opts...)
		d.Run(sc.Steps, spec.Step)
		detectors = append(detectors, d)
	}

	r.log.Info("simulation finished",
		"beacons", len(sc.Beacons),
		"detectors", len(detectors),
		"steps", sc.Steps,
	)

	estimates, err := r.pair(detectors)
	if err != nil {
		return nil, err
	}

	return &Result{
		Scenario:  sc,
		Beacons:   source.Beacons(),
		Detectors: detectors,
		Estimates: estimates,
	}, nil
}

func (r *Runner) pair(detectors []*detector.Detector) ([]Estimate, error) {
	histories := make([][]*detector.Snapshot, len(detectors))
	for i, d := range detectors {
		histories[i] = d.History()
	}

	var estimates []Estimate
	for step := 0; step < r.scenario.Steps; step++ {
		for i, h := range histories {
			if step > 0 {
				found, err := r.intersect(step, PairConsecutive, h[step-1], h[step])
				if err != nil {
					return nil, err
				}
				estimates = append(estimates, found...)
			}
			for _, other := range histories[i+1:] {
				found, err := r.intersect(step, PairCross, h[step], other[step])
				if err != nil {
					return nil, err
				}
				estimates = append(estimates, found...)
			}
		}
	}

	r.log.Info("paired snapshots", "estimates", len(estimates))
	return estimates, nil
}

func (r *Runner) intersect(step int, kind PairKind, from, to *detector.Snapshot) ([]Estimate, error) {
	shared := from.SharedBeacons(to)
	if heardOnce := from.Len() + to.Len() - 2*len(shared); heardOnce > 0 {
		r.log.Debug("skipping beacons heard by one snapshot only",
			"step", step, "from", from.DetectorID, "to", to.DetectorID, "count", heardOnce)
	}

	var estimates []Estimate
	for _, id := range shared {
		points, err := from.Intersects(id, to)
		if errors.Is(err, trilat.ErrCoincidentCircles) {
			// a detector that did not move between samples
			r.log.Debug("skipping pair", "step", step, "beacon", id, "err", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("step %d, beacon %q: %w", step, id, err)
		}
		estimates = append(estimates, Estimate{
			Step:     step,
			BeaconID: id,
			Kind:     kind,
			From:     from,
			To:       to,
			Points:   points,
		})
	}
	return estimates, nil
}
