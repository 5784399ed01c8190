// Package report renders snapshots and estimates as human-readable text.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"trilat.klederson.com/internal/detector"
	"trilat.klederson.com/internal/sim"
)

const timeLayout = "15:04:05.000"

// Writer prints reports to an io.Writer. Colors are used only when the
// destination is a color capable terminal.
type Writer struct {
	out io.Writer

	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	beacon   lipgloss.Style
	warn     lipgloss.Style
	dim      lipgloss.Style
	estimate lipgloss.Style
}

// Option configures a Writer.
type Option func(*lipgloss.Renderer)

// Plain disables colors regardless of the terminal.
func Plain() Option {
	return func(r *lipgloss.Renderer) {
		r.SetColorProfile(termenv.Ascii)
	}
}

// New creates a Writer for out.
func New(out io.Writer, opts ...Option) *Writer {
	r := lipgloss.NewRenderer(out)
	for _, opt := range opts {
		opt(r)
	}

	return &Writer{
		out:      out,
		header:   r.NewStyle().Foreground(lipgloss.Color("#00FF41")).Bold(true),
		label:    r.NewStyle().Foreground(lipgloss.Color("#008F11")),
		value:    r.NewStyle().Foreground(lipgloss.Color("#00CC33")),
		beacon:   r.NewStyle().Foreground(lipgloss.Color("#00FFAA")).Bold(true),
		warn:     r.NewStyle().Foreground(lipgloss.Color("#FFAA00")).Bold(true),
		dim:      r.NewStyle().Foreground(lipgloss.Color("#004A0A")),
		estimate: r.NewStyle().Foreground(lipgloss.Color("#FFCC00")),
	}
}

// Snapshot prints one snapshot: where and when it was taken, and every beacon
// heard with its RSSI and estimated distance.
func (w *Writer) Snapshot(s *detector.Snapshot) error {
	var sb strings.Builder

	sb.WriteString(w.header.Render("[LOG]"))
	fmt.Fprintf(&sb, " %s %s %s %s %s\n",
		w.label.Render("at"), w.value.Render(formatTime(s.Timestamp)),
		w.label.Render("position"), w.value.Render(s.Position.String()),
		w.label.Render(fmt.Sprintf("detector %q received %d signals", s.DetectorID, s.Len())),
	)

	if s.Len() == 0 {
		sb.WriteString("\t" + w.warn.Render("*** NO SIGNALS DETECTED ***") + "\n")
	}

	for _, r := range s.Signals() {
		var dist string
		if d, err := r.Distance(); err == nil {
			dist = fmt.Sprintf("%.2f m", d)
		} else {
			dist = w.warn.Render(err.Error())
		}
		fmt.Fprintf(&sb, "\t%s %s %s %s %s\n",
			w.beacon.Render("["+r.BeaconID+"]"),
			w.label.Render("rssi"), w.value.Render(fmt.Sprintf("%.2f dBm", r.RSSI)),
			w.label.Render("distance"), w.value.Render(dist),
		)
	}

	_, err := io.WriteString(w.out, sb.String())
	return err
}

// History prints every snapshot of a detector, oldest first.
func (w *Writer) History(d *detector.Detector) error {
	for _, s := range d.History() {
		if err := w.Snapshot(s); err != nil {
			return err
		}
	}
	return nil
}

// Estimate prints the candidate positions of one estimate.
func (w *Writer) Estimate(e sim.Estimate) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s %s %s -> %s: ",
		w.estimate.Render("[FIX]"),
		w.label.Render(fmt.Sprintf("step %d", e.Step)),
		w.beacon.Render("["+e.BeaconID+"]"),
		w.value.Render(e.From.DetectorID+"@"+e.From.Position.String()),
		w.value.Render(e.To.DetectorID+"@"+e.To.Position.String()),
	)

	if len(e.Points) == 0 {
		sb.WriteString(w.dim.Render("no intersection"))
	} else {
		parts := make([]string, len(e.Points))
		for i, p := range e.Points {
			parts[i] = p.String()
		}
		sb.WriteString(w.estimate.Render(strings.Join(parts, " or ")))
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w.out, sb.String())
	return err
}

// Result prints a whole simulation: the log of every detector, then the
// estimates.
func (w *Writer) Result(r *sim.Result) error {
	for _, d := range r.Detectors {
		if err := w.History(d); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w.out, "\n%s\n", w.header.Render(fmt.Sprintf("%d estimates", len(r.Estimates)))); err != nil {
		return err
	}
	for _, e := range r.Estimates {
		if err := w.Estimate(e); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}
