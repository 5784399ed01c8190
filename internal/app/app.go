package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"trilat.klederson.com/internal/config"
	"trilat.klederson.com/internal/detector"
	"trilat.klederson.com/internal/plot"
	"trilat.klederson.com/internal/sim"
	"trilat.klederson.com/internal/ui"
)

const playInterval = 400 * time.Millisecond

// AppModel is the root Bubble Tea model of the viewer. It replays a finished
// simulation step by step; nothing is computed while it runs.
type AppModel struct {
	width  int
	height int

	result *sim.Result

	step     int // index into each detector's history
	detector int // index into result.Detectors
	cursor   int // selected signal in the current snapshot
	playing  bool
}

// New creates an AppModel for result.
func New(result *sim.Result) AppModel {
	return AppModel{result: result}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case PlayMsg:
		if !m.playing {
			return m, nil
		}
		if m.step >= m.lastStep() {
			m.playing = false
			return m, nil
		}
		m.setStep(m.step + 1)
		return m, playCmd()
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case " ", "space", "p", "P":
		m.playing = !m.playing
		if m.playing {
			return m, playCmd()
		}

	case "right", "l", ">":
		m.playing = false
		m.setStep(m.step + 1)

	case "left", "h", "<":
		m.playing = false
		m.setStep(m.step - 1)

	case "home":
		m.setStep(0)

	case "end":
		m.setStep(m.lastStep())

	case "tab":
		if n := len(m.result.Detectors); n > 0 {
			m.detector = (m.detector + 1) % n
			m.clampCursor()
		}

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if snap := m.Snapshot(); snap != nil && m.cursor < snap.Len()-1 {
			m.cursor++
		}
	}

	return m, nil
}

func (m *AppModel) setStep(step int) {
	m.step = max(0, min(step, m.lastStep()))
	m.clampCursor()
}

func (m *AppModel) clampCursor() {
	snap := m.Snapshot()
	if snap == nil || snap.Len() == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(m.cursor, snap.Len()-1)
}

func (m AppModel) lastStep() int {
	return max(m.result.Steps()-1, 0)
}

// Step returns the current step index.
func (m AppModel) Step() int {
	return m.step
}

// Snapshot returns the snapshot under the cursor, or nil.
func (m AppModel) Snapshot() *detector.Snapshot {
	if m.detector >= len(m.result.Detectors) {
		return nil
	}
	history := m.result.Detectors[m.detector].History()
	if m.step >= len(history) {
		return nil
	}
	return history[m.step]
}

// SelectedBeacon returns the id of the beacon under the cursor, or "".
func (m AppModel) SelectedBeacon() string {
	snap := m.Snapshot()
	if snap == nil {
		return ""
	}
	signals := snap.Signals()
	if m.cursor >= len(signals) {
		return ""
	}
	return signals[m.cursor].BeaconID
}

// distanceTrend returns the estimated distances to beaconID over the
// detector's most recent samples up to the current step.
func (m AppModel) distanceTrend(beaconID string) []float64 {
	if beaconID == "" || m.detector >= len(m.result.Detectors) {
		return nil
	}
	history := m.result.Detectors[m.detector].History()
	if m.step >= len(history) {
		return nil
	}

	var trend []float64
	for _, snap := range history[:m.step+1] {
		r, ok := snap.Signal(beaconID)
		if !ok {
			continue
		}
		if d, err := r.Distance(); err == nil {
			trend = append(trend, d)
		}
	}
	if len(trend) > config.HistoryLen {
		trend = trend[len(trend)-config.HistoryLen:]
	}
	return trend
}

func (m AppModel) scene() plot.Scene {
	scene := plot.Scene{Beacons: m.result.Beacons}

	for _, d := range m.result.Detectors {
		history := d.History()
		for _, snap := range history[:min(m.step+1, len(history))] {
			scene.Track = append(scene.Track, snap.Position)
		}
		if m.step < len(history) {
			scene.Detectors = append(scene.Detectors, history[m.step].Position)
		}
	}

	snap := m.Snapshot()
	beacon := m.SelectedBeacon()
	if snap == nil || beacon == "" {
		return scene
	}

	for _, e := range m.stepEstimates() {
		if e.BeaconID != beacon || (e.From != snap && e.To != snap) {
			continue
		}
		for _, s := range []*detector.Snapshot{e.From, e.To} {
			r, _ := s.Signal(beacon)
			if d, err := r.Distance(); err == nil {
				scene.Circles = append(scene.Circles, plot.Circle{Center: s.Position, Radius: d})
			}
		}
		scene.Candidates = append(scene.Candidates, e.Points...)
	}
	return scene
}

func (m AppModel) stepEstimates() []sim.Estimate {
	var out []sim.Estimate
	for _, e := range m.result.Estimates {
		if e.Step == m.step {
			out = append(out, e)
		}
	}
	return out
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing viewer..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 10 {
		bodyH = 10
	}

	plotW := m.width * 2 / 3
	if plotW < 30 {
		plotW = 30
	}
	sideW := m.width - plotW
	if sideW < 24 {
		sideW = 24
		plotW = m.width - sideW
	}

	detectorID := ""
	snap := m.Snapshot()
	if snap != nil {
		detectorID = snap.DetectorID
	}
	menuBar := ui.RenderMenuBar(m.width, detectorID, m.playing)

	innerW := max(plotW-4, 5)
	innerH := max(bodyH-4, 3)
	plotContent := plot.Render(innerW, innerH, m.scene())
	legend := plot.RenderLegend(innerW)
	plotPanel := ui.RenderPlotPanel(plotW, bodyH, plotContent, legend)

	listH := bodyH / 3
	beacon := m.SelectedBeacon()
	signalList := ui.RenderSignalList(snap, sideW, listH, m.cursor)
	fixPanel := ui.RenderFixPanel(snap, beacon, m.stepEstimates(), m.distanceTrend(beacon), sideW, bodyH-listH)
	side := ui.StackPanels(signalList, fixPanel)

	heard := 0
	if snap != nil {
		heard = snap.Len()
	}
	fixes := 0
	for _, e := range m.stepEstimates() {
		if len(e.Points) > 0 {
			fixes++
		}
	}
	statusBar := ui.RenderStatusBar(m.width, m.playing, m.step, m.result.Steps(),
		len(m.result.Beacons), heard, fixes, m.result.Scenario.PathLossExp)

	return ui.ComposeLayout(menuBar, plotPanel, side, statusBar)
}

func playCmd() tea.Cmd {
	return tea.Tick(playInterval, func(t time.Time) tea.Msg {
		return PlayMsg(t)
	})
}
