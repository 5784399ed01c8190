package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"trilat.klederson.com/internal/geometry"
)

// ErrInvalidScenario is returned for scenarios that cannot be simulated.
var ErrInvalidScenario = errors.New("invalid scenario")

// BeaconSpec describes a simulated beacon.
type BeaconSpec struct {
	ID              string         `yaml:"id"`
	Position        geometry.Point `yaml:"position"`
	MaxRange        *float64       `yaml:"max_range,omitempty"`
	CalibratedPower *float64       `yaml:"calibrated_power,omitempty"`
}

// Range returns the configured range or MaxRange.
func (b BeaconSpec) Range() float64 {
	if b.MaxRange == nil {
		return MaxRange
	}
	return *b.MaxRange
}

// Power returns the configured calibrated power or CalibratedPower.
func (b BeaconSpec) Power() float64 {
	if b.CalibratedPower == nil {
		return CalibratedPower
	}
	return *b.CalibratedPower
}

// DetectorSpec describes a detector: where it starts and how far it moves
// between two samples.
type DetectorSpec struct {
	ID    string         `yaml:"id"`
	Start geometry.Point `yaml:"start"`
	Step  geometry.Point `yaml:"step"`
}

// Scenario is a complete simulation setup, usually loaded from YAML.
type Scenario struct {
	Steps       int
	PathLossExp float64
	// EstimateExponent, when set, replaces PathLossExp on the detector side,
	// modelling a receiver that assumes the wrong environment.
	EstimateExponent *float64
	Beacons          []BeaconSpec
	Detectors        []DetectorSpec
}

// scenarioFile is the YAML form of a Scenario. Pointers tell an explicit zero
// from a missing key.
type scenarioFile struct {
	Steps            *int           `yaml:"steps"`
	PathLossExp      *float64       `yaml:"path_loss_exponent"`
	EstimateExponent *float64       `yaml:"estimate_exponent"`
	Beacons          []BeaconSpec   `yaml:"beacons"`
	Detectors        []DetectorSpec `yaml:"detectors"`
}

func (f scenarioFile) scenario() Scenario {
	sc := Scenario{
		Steps:            DefaultSteps,
		PathLossExp:      PathLossExp,
		EstimateExponent: f.EstimateExponent,
		Beacons:          f.Beacons,
		Detectors:        f.Detectors,
	}
	if f.Steps != nil {
		sc.Steps = *f.Steps
	}
	if f.PathLossExp != nil {
		sc.PathLossExp = *f.PathLossExp
	}
	return sc
}

// DefaultScenario is the classic run: two beacons and one detector walking
// diagonally through them.
func DefaultScenario() Scenario {
	return Scenario{
		Steps:       DefaultSteps,
		PathLossExp: PathLossExp,
		Beacons: []BeaconSpec{
			{ID: "tango", Position: geometry.XY(1, 5)},
			{ID: "foxtrot", Position: geometry.XY(8, 3)},
		},
		Detectors: []DetectorSpec{
			{ID: "backpack", Start: geometry.XY(-10, -10), Step: geometry.XY(1, 1)},
		},
	}
}

// LoadScenario reads a scenario file. Missing fields fall back to defaults.
func LoadScenario(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()
	return ParseScenario(f)
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(r io.Reader) (Scenario, error) {
	var f scenarioFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	sc := f.scenario()
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks that the scenario can be run.
func (sc Scenario) Validate() error {
	if sc.Steps < 0 {
		return fmt.Errorf("%w: steps must be >= 0, got %d", ErrInvalidScenario, sc.Steps)
	}
	if !validExponent(sc.PathLossExp) {
		return fmt.Errorf("%w: path loss exponent must be a non-zero number", ErrInvalidScenario)
	}
	if n := sc.EstimateExponent; n != nil && !validExponent(*n) {
		return fmt.Errorf("%w: estimate exponent must be a non-zero number", ErrInvalidScenario)
	}
	if len(sc.Detectors) == 0 {
		return fmt.Errorf("%w: no detectors", ErrInvalidScenario)
	}

	seen := make(map[string]bool, len(sc.Beacons))
	for _, b := range sc.Beacons {
		if b.ID == "" {
			return fmt.Errorf("%w: beacon without id", ErrInvalidScenario)
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: duplicate beacon %q", ErrInvalidScenario, b.ID)
		}
		seen[b.ID] = true
	}

	seen = make(map[string]bool, len(sc.Detectors))
	for _, d := range sc.Detectors {
		if d.ID == "" {
			return fmt.Errorf("%w: detector without id", ErrInvalidScenario)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate detector %q", ErrInvalidScenario, d.ID)
		}
		seen[d.ID] = true
	}
	return nil
}

func validExponent(n float64) bool {
	return n != 0 && !math.IsNaN(n) && !math.IsInf(n, 0)
}
