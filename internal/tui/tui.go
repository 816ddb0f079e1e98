package tui

import (
	"github.com/charmbracelet/log"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrenholt/autolight/internal/controller"
)

// PanelTUI wraps the bubbletea program so the rest of the application can
// push messages into the running UI.
type PanelTUI struct {
	program *tea.Program
}

func NewPanelTUI(logger *log.Logger, ctrl *controller.SyncController, admin bool) *PanelTUI {
	m := newModel(logger, ctrl, admin)
	p := tea.NewProgram(m, tea.WithAltScreen())
	return &PanelTUI{program: p}
}

// Run blocks until the user quits.
func (t *PanelTUI) Run() error {
	_, err := t.program.Run()
	return err
}

// NotifyRemoteChange tells the panel the device state changed behind its
// back (seen on the event stream). The draft is left alone, the user
// decides whether to reload.
func (t *PanelTUI) NotifyRemoteChange() {
	t.program.Send(remoteChangeMsg{})
}
