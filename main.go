package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"trilat.klederson.com/internal/app"
	"trilat.klederson.com/internal/config"
	"trilat.klederson.com/internal/geometry"
	"trilat.klederson.com/internal/report"
	"trilat.klederson.com/internal/signal"
	"trilat.klederson.com/internal/sim"
	"trilat.klederson.com/internal/trilat"
)

var (
	flagVerbose  bool
	flagScenario string
	flagSteps    int
	flagPlain    bool

	flagPower float64
	flagRSSI  float64
	flagExp   float64

	flagA, flagB   string
	flagRA, flagRB float64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trilat",
		Short: "TRILAT - beacon trilateration from RSSI readings",
		Long: `TRILAT estimates where a radio beacon is by turning RSSI readings into
distances (log-distance path loss) and intersecting the distance circles
seen from two detector positions.

Beacons and detectors are simulated; a scenario file describes them.
Without --scenario the classic two beacon, one detector walk is used.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages to stderr")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scenario and print the detector logs and fixes",
		RunE:  runSimulate,
	}
	addScenarioFlags(simulateCmd)
	simulateCmd.Flags().BoolVar(&flagPlain, "plain", false, "Disable colors")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Run a scenario and step through it interactively",
		RunE:  runWatch,
	}
	addScenarioFlags(watchCmd)

	distanceCmd := &cobra.Command{
		Use:   "distance",
		Short: "Estimate a distance from one RSSI reading",
		RunE:  runDistance,
	}
	distanceCmd.Flags().Float64Var(&flagPower, "power", config.CalibratedPower, "Calibrated power, RSSI at 1 meter (dBm)")
	distanceCmd.Flags().Float64Var(&flagRSSI, "rssi", 0, "Measured RSSI (dBm)")
	distanceCmd.Flags().Float64Var(&flagExp, "exp", config.PathLossExp, "Path loss exponent")
	_ = distanceCmd.MarkFlagRequired("rssi")

	intersectCmd := &cobra.Command{
		Use:   "intersect",
		Short: "Intersect two distance circles",
		RunE:  runIntersect,
	}
	intersectCmd.Flags().StringVar(&flagA, "a", "", "First center as x,y")
	intersectCmd.Flags().Float64Var(&flagRA, "ra", 0, "First radius (m)")
	intersectCmd.Flags().StringVar(&flagB, "b", "", "Second center as x,y")
	intersectCmd.Flags().Float64Var(&flagRB, "rb", 0, "Second radius (m)")
	for _, name := range []string{"a", "ra", "b", "rb"} {
		_ = intersectCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(simulateCmd, watchCmd, distanceCmd, intersectCmd)
	return rootCmd
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagScenario, "scenario", "s", "", "Scenario YAML file")
	cmd.Flags().IntVar(&flagSteps, "steps", 0, "Override the number of samples per detector (0 runs no samples)")
}

func setupLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadScenario(cmd *cobra.Command) (config.Scenario, error) {
	sc := config.DefaultScenario()
	if flagScenario != "" {
		var err error
		if sc, err = config.LoadScenario(flagScenario); err != nil {
			return config.Scenario{}, err
		}
	}
	if cmd.Flags().Changed("steps") {
		sc.Steps = flagSteps
	}
	return sc, sc.Validate()
}

func runScenario(cmd *cobra.Command, log *slog.Logger) (*sim.Result, error) {
	sc, err := loadScenario(cmd)
	if err != nil {
		return nil, err
	}
	runner, err := sim.New(sc, sim.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return runner.Run()
}

func runSimulate(cmd *cobra.Command, args []string) error {
	log := setupLogger(cmd.ErrOrStderr())

	result, err := runScenario(cmd, log)
	if err != nil {
		return err
	}

	var opts []report.Option
	if flagPlain {
		opts = append(opts, report.Plain())
	}
	return report.New(cmd.OutOrStdout(), opts...).Result(result)
}

func runWatch(cmd *cobra.Command, args []string) error {
	// logs would corrupt the alt screen
	result, err := runScenario(cmd, setupLogger(io.Discard))
	if err != nil {
		return err
	}

	p := tea.NewProgram(app.New(result), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runDistance(cmd *cobra.Command, args []string) error {
	d, err := signal.EstimateDistance(flagPower, flagRSSI, flagExp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.4f m\n", d)
	return err
}

func runIntersect(cmd *cobra.Command, args []string) error {
	a, err := parsePoint(flagA)
	if err != nil {
		return fmt.Errorf("--a: %w", err)
	}
	b, err := parsePoint(flagB)
	if err != nil {
		return fmt.Errorf("--b: %w", err)
	}

	points, err := trilat.Intersect(a, flagRA, b, flagRB)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(points) == 0 {
		_, err = fmt.Fprintln(out, "no intersection")
		return err
	}
	for _, p := range points {
		if _, err := fmt.Fprintln(out, p); err != nil {
			return err
		}
	}
	return nil
}

func parsePoint(s string) (geometry.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.XY(x, y), nil
}
