package ui

import (
	"io"

	"github.com/pterm/pterm"

	"github.com/satishbabariya/ingres-go/internal/core/introspection/domain"
)

// ProgressMonitor reports introspection progress on the terminal. Tasks
// with a known total get a progress bar, the others a spinner.
type ProgressMonitor struct {
	w       io.Writer
	bar     *pterm.ProgressbarPrinter
	spinner *pterm.SpinnerPrinter
}

var _ domain.ProgressMonitor = (*ProgressMonitor)(nil)

// NewProgressMonitor returns a monitor writing to w, or to Err when w is nil.
func NewProgressMonitor(w io.Writer) *ProgressMonitor {
	if w == nil {
		w = Err
	}
	return &ProgressMonitor{w: w}
}

func (m *ProgressMonitor) BeginTask(name string, total int) {
	m.stop()

	if total > 0 {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle(name).
			WithWriter(m.w).
			WithRemoveWhenDone(true).
			Start()
		if err == nil {
			m.bar = bar
		}
		return
	}

	spinner, err := pterm.DefaultSpinner.
		WithWriter(m.w).
		WithRemoveWhenDone(true).
		Start(name)
	if err == nil {
		m.spinner = spinner
	}
}

func (m *ProgressMonitor) SetTaskName(name string) {
	switch {
	case m.bar != nil:
		m.bar.UpdateTitle(name)
	case m.spinner != nil:
		m.spinner.UpdateText(name)
	}
}

func (m *ProgressMonitor) Worked(done int) {
	if m.bar != nil && done > 0 {
		m.bar.Add(done)
	}
}

func (m *ProgressMonitor) Done() {
	m.stop()
}

func (m *ProgressMonitor) stop() {
	if m.bar != nil {
		m.bar.Stop()
		m.bar = nil
	}
	if m.spinner != nil {
		m.spinner.Stop()
		m.spinner = nil
	}
}
