package hostui

import (
	"fmt"

	"fyne.io/fyne/v2/widget"
)

// statusBar renders the machine's live telemetry: frame rate, halted
// state and input-queue depth.
type statusBar struct {
	label *widget.Label
}

func newStatusBar() *statusBar {
	return &statusBar{label: widget.NewLabel("")}
}

func (s *statusBar) update(fps float64, halted bool, queued int) {
	s.label.SetText(fmt.Sprintf("FPS: %.1f | Halted: %v | Input queued: %d", fps, halted, queued))
}
