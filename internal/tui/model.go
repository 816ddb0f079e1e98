package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/wrenholt/autolight/internal/constants"
	"github.com/wrenholt/autolight/internal/controller"
	"github.com/wrenholt/autolight/internal/models"
	"github.com/wrenholt/autolight/internal/schedule"
	"github.com/wrenholt/autolight/internal/timeutil"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57")).Padding(0, 1)
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	staleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// a one second heartbeat drives the activity badges, "now" advances even
// when no data changes
type tickMsg time.Time

type loadDoneMsg struct {
	err error
}

type saveDoneMsg struct {
	state models.LightState
	err   error
}

type remoteChangeMsg struct{}

type mode int

const (
	modeList mode = iota
	modeEdit
)

type model struct {
	logger *log.Logger
	ctrl   *controller.SyncController
	admin  bool

	now           time.Time
	cursor        int
	status        string
	statusIsError bool
	remoteChanged bool
	busy          bool
	quitting      bool

	mode   mode
	editor *editor
}

func newModel(logger *log.Logger, ctrl *controller.SyncController, admin bool) *model {
	return &model{
		logger: logger,
		ctrl:   ctrl,
		admin:  admin,
		now:    time.Now(),
		status: "loading device state...",
		busy:   true,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.loadCmd())
}

// tick schedules the next activity refresh. It is not rescheduled once the
// model is quitting, so tearing the view down also stops the timer.
func (m *model) tick() tea.Cmd {
	return tea.Tick(constants.ActivityRefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{err: m.ctrl.Load()}
	}
}

func (m *model) saveCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.ctrl.Save()
		return saveDoneMsg{state: state, err: err}
	}
}

func (m *model) Update(message tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := message.(type) {

	case tickMsg:
		m.now = time.Time(msg)
		if m.quitting {
			return m, nil
		}
		return m, m.tick()

	case loadDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("load failed: %s", msg.err))
			return m, nil
		}
		m.remoteChanged = false
		m.clampCursor()
		m.setStatus("device state loaded")
		return m, nil

	case saveDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("save failed: %s", msg.err))
			return m, nil
		}
		m.setStatus(fmt.Sprintf("saved, device confirmed %d schedule(s)", len(msg.state.Schedules)))
		return m, nil

	case remoteChangeMsg:
		m.remoteChanged = true
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeEdit {
			return m.updateEdit(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {

	entries := m.ctrl.Schedules()

	switch msg.String() {

	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(entries)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "l":
		m.busy = true
		m.setStatus("loading...")
		return m, m.loadCmd()

	case "s":
		m.busy = true
		m.setStatus("saving...")
		return m, m.saveCmd()

	case "a":
		draft, ok := m.ctrl.Draft()
		if !ok {
			m.setError("load the device state first")
			return m, nil
		}
		// a fresh schedule starts as "now to now", like the original panel
		added, _ := m.ctrl.AddSchedule(models.Schedule{
			Start:      m.now.Unix(),
			End:        m.now.Unix(),
			Color:      draft.Color,
			DaysActive: []string{},
		})
		m.cursor = len(entries)
		m.openEditor(added)
		return m, m.editor.focusCmd()

	case "S":
		if !m.ctrl.Loaded() {
			m.setError("load the device state first")
			return m, nil
		}
		draft, _ := m.ctrl.Draft()
		added, _ := m.ctrl.AddSchedule(schedule.EveningPreset(m.now, draft.Color))
		m.cursor = len(entries)
		m.setStatus(fmt.Sprintf("added evening preset %s", timeutil.EpochToLocalDateTime(added.Start)))
		return m, nil

	case "e", "enter":
		if m.cursor < len(entries) {
			m.openEditor(entries[m.cursor])
			return m, m.editor.focusCmd()
		}

	case "d", "delete":
		if m.cursor < len(entries) {
			if m.ctrl.RemoveSchedule(entries[m.cursor].ID) {
				m.setStatus("schedule removed, save to apply")
			}
			m.clampCursor()
		}

	case "p":
		if !m.admin {
			m.setError("pin settings require the admin flag")
			return m, nil
		}
		if draft, ok := m.ctrl.Draft(); ok {
			m.openPinEditor(draft.Pins)
			return m, m.editor.focusCmd()
		}

	case "c":
		if draft, ok := m.ctrl.Draft(); ok {
			m.openColorEditor(draft.Color)
			return m, m.editor.focusCmd()
		}
	}

	return m, nil
}

func (m *model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {

	switch msg.String() {

	case "esc":
		m.mode = modeList
		m.editor = nil
		m.setStatus("edit cancelled")
		return m, nil

	case "enter":
		if err := m.editor.commit(m.ctrl); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.mode = modeList
		m.editor = nil
		m.setStatus("draft updated, save to apply")
		return m, nil

	case "tab", "shift+tab":
		return m, m.editor.cycleFocus(msg.String() == "tab")

	default:
		if m.editor.kind == editSchedule {
			// number keys toggle weekdays, everything else feeds the inputs
			if day, ok := dayForKey(msg.String()); ok {
				m.editor.toggleDay(day)
				return m, nil
			}
		}
	}

	return m, m.editor.updateInputs(msg)
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("AutoLight"))
	b.WriteString(fmt.Sprintf("  %s  %s\n\n", viper.GetString("deviceAddress"), m.now.Format("15:04:05")))

	if m.mode == modeEdit {
		b.WriteString(m.editor.view())
	} else {
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	if m.remoteChanged {
		b.WriteString(hintStyle.Render("device state changed remotely, press l to reload") + "\n")
	}
	if m.status != "" {
		if m.statusIsError {
			b.WriteString(errorStyle.Render(m.status) + "\n")
		} else {
			b.WriteString(m.status + "\n")
		}
	}
	b.WriteString(m.helpView())

	return b.String()
}

func (m *model) listView() string {

	draft, ok := m.ctrl.Draft()
	if !ok {
		return "no device state loaded\n"
	}

	var b strings.Builder

	entries := m.ctrl.Schedules()
	if len(entries) == 0 {
		b.WriteString("no schedules defined\n")
	}
	for i, entry := range entries {
		line := fmt.Sprintf("%s %s %s → %s  %s  %s",
			statusBadge(schedule.Classify(entry.Schedule, m.now)),
			swatch(entry.Color),
			timeutil.EpochToLocalDateTime(entry.Start),
			timeutil.EpochToLocalDateTime(entry.End),
			daySummary(entry.DaysActive),
			countdown(entry.Schedule, m.now),
		)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(fmt.Sprintf("\ncolor %s r:%d g:%d b:%d\n", swatch(draft.Color), draft.Color.R, draft.Color.G, draft.Color.B))
	if m.admin {
		b.WriteString(fmt.Sprintf("pins  r:%d g:%d b:%d\n", draft.Pins.RPin, draft.Pins.GPin, draft.Pins.BPin))
	}

	return b.String()
}

func (m *model) helpView() string {
	help := "j/k move • a add • S sunset preset • e edit • d delete • c color • l load • s save • q quit"
	if m.admin {
		help += " • p pins"
	}
	return helpStyle.Render(help)
}

func (m *model) setStatus(s string) {
	m.status = s
	m.statusIsError = false
}

func (m *model) setError(s string) {
	m.status = s
	m.statusIsError = true
}

func (m *model) clampCursor() {
	if n := len(m.ctrl.Schedules()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

func statusBadge(s schedule.Status) string {
	switch s {
	case schedule.StatusActive:
		return activeStyle.Render("● active ")
	case schedule.StatusStale:
		return staleStyle.Render("✕ stale  ")
	default:
		return pendingStyle.Render("○ pending")
	}
}

func swatch(c models.RGBColor) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", clampChannel(c.R), clampChannel(c.G), clampChannel(c.B)))).
		Render("███")
}

// the swatch is decoration, render out-of-range drafts instead of breaking
func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func daySummary(days []string) string {
	if len(days) == 0 {
		return "one-shot  "
	}
	if len(days) == 7 {
		return "daily     "
	}
	short := make([]string, len(days))
	for i, d := range days {
		if len(d) >= 3 {
			short[i] = d[:3]
		} else {
			short[i] = d
		}
	}
	return fmt.Sprintf("%-10s", strings.Join(short, ","))
}

func countdown(sch models.Schedule, now time.Time) string {
	switch schedule.Classify(sch, now) {
	case schedule.StatusActive:
		if !sch.IsRecurring() {
			return "ends in " + timeutil.FormatDuration(sch.End-now.Unix())
		}
		return ""
	case schedule.StatusPending:
		if !sch.IsRecurring() && sch.Start > now.Unix() {
			return "starts in " + timeutil.FormatDuration(sch.Start-now.Unix())
		}
		return ""
	default:
		return "ended " + timeutil.FormatDuration(now.Unix()-sch.End) + " ago"
	}
}

func dayForKey(key string) (string, bool) {
	// 1..7 map to Monday..Sunday, matching the panel's day picker order
	order := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '7' {
		return order[key[0]-'1'], true
	}
	return "", false
}
