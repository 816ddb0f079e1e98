package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wrenholt/autolight/internal/controller"
	"github.com/wrenholt/autolight/internal/models"
	"github.com/wrenholt/autolight/internal/schedule"
	"github.com/wrenholt/autolight/internal/timeutil"
)

type editorKind int

const (
	editSchedule editorKind = iota
	editColor
	editPins
)

// day picker order, Monday first like the original panel
var pickerDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var (
	dayOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57"))
	dayOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// editor is a small form over the draft: one schedule entry (addressed by
// its identifier), the base color, or the pin assignments.
type editor struct {
	kind   editorKind
	id     string
	labels []string
	inputs []textinput.Model
	days   map[string]bool
	focus  int
}

func (m *model) openEditor(entry schedule.TrackedSchedule) {
	days := map[string]bool{}
	for _, d := range entry.DaysActive {
		days[d] = true
	}
	m.editor = &editor{
		kind:   editSchedule,
		id:     entry.ID,
		labels: []string{"start", "end", "r", "g", "b"},
		inputs: makeInputs(
			timeutil.EpochToLocalDateTime(entry.Start),
			timeutil.EpochToLocalDateTime(entry.End),
			strconv.Itoa(entry.Color.R),
			strconv.Itoa(entry.Color.G),
			strconv.Itoa(entry.Color.B),
		),
		days: days,
	}
	m.mode = modeEdit
}

func (m *model) openColorEditor(color models.RGBColor) {
	m.editor = &editor{
		kind:   editColor,
		labels: []string{"r", "g", "b"},
		inputs: makeInputs(strconv.Itoa(color.R), strconv.Itoa(color.G), strconv.Itoa(color.B)),
	}
	m.mode = modeEdit
}

func (m *model) openPinEditor(pins models.RGBPins) {
	m.editor = &editor{
		kind:   editPins,
		labels: []string{"rPin", "gPin", "bPin"},
		inputs: makeInputs(strconv.Itoa(pins.RPin), strconv.Itoa(pins.GPin), strconv.Itoa(pins.BPin)),
	}
	m.mode = modeEdit
}

func makeInputs(values ...string) []textinput.Model {
	inputs := make([]textinput.Model, len(values))
	for i, v := range values {
		in := textinput.New()
		in.SetValue(v)
		in.CharLimit = 32
		inputs[i] = in
	}
	return inputs
}

func (e *editor) focusCmd() tea.Cmd {
	e.inputs[0].Focus()
	return textinput.Blink
}

func (e *editor) cycleFocus(forward bool) tea.Cmd {
	e.inputs[e.focus].Blur()
	if forward {
		e.focus = (e.focus + 1) % len(e.inputs)
	} else {
		e.focus = (e.focus + len(e.inputs) - 1) % len(e.inputs)
	}
	return e.inputs[e.focus].Focus()
}

func (e *editor) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(e.inputs))
	for i := range e.inputs {
		e.inputs[i], cmds[i] = e.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (e *editor) toggleDay(day string) {
	e.days[day] = !e.days[day]
}

// commit parses the form and applies it to the draft.
func (e *editor) commit(ctrl *controller.SyncController) error {

	switch e.kind {

	case editSchedule:
		start, err := timeutil.LocalDateTimeToEpoch(e.inputs[0].Value())
		if err != nil {
			return fmt.Errorf("invalid start: %w", err)
		}
		end, err := timeutil.LocalDateTimeToEpoch(e.inputs[1].Value())
		if err != nil {
			return fmt.Errorf("invalid end: %w", err)
		}
		color, err := e.parseColor(2)
		if err != nil {
			return err
		}

		days := []string{}
		for _, d := range pickerDays {
			if e.days[d] {
				days = append(days, d)
			}
		}

		if !ctrl.UpdateSchedule(e.id, func(s *models.Schedule) {
			s.Start = start
			s.End = end
			s.Color = color
			s.DaysActive = days
		}) {
			return fmt.Errorf("schedule no longer exists")
		}

	case editColor:
		color, err := e.parseColor(0)
		if err != nil {
			return err
		}
		if !ctrl.SetColor(color) {
			return fmt.Errorf("no device state loaded")
		}

	case editPins:
		r, g, b, err := e.parseInts(0)
		if err != nil {
			return err
		}
		if !ctrl.SetPins(models.RGBPins{RPin: r, GPin: g, BPin: b}) {
			return fmt.Errorf("no device state loaded")
		}
	}

	return nil
}

func (e *editor) parseColor(offset int) (models.RGBColor, error) {
	r, g, b, err := e.parseInts(offset)
	if err != nil {
		return models.RGBColor{}, err
	}
	return models.RGBColor{R: r, G: g, B: b}, nil
}

func (e *editor) parseInts(offset int) (int, int, int, error) {
	out := [3]int{}
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(e.inputs[offset+i].Value()))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid %s: %q", e.labels[offset+i], e.inputs[offset+i].Value())
		}
		out[i] = v
	}
	return out[0], out[1], out[2], nil
}

func (e *editor) view() string {
	var b strings.Builder

	switch e.kind {
	case editSchedule:
		b.WriteString("edit schedule\n\n")
	case editColor:
		b.WriteString("edit color\n\n")
	case editPins:
		b.WriteString("edit pins\n\n")
	}

	for i, in := range e.inputs {
		b.WriteString(fmt.Sprintf("%-6s %s\n", e.labels[i], in.View()))
	}

	if e.kind == editSchedule {
		b.WriteString("\ndays   ")
		for i, d := range pickerDays {
			label := fmt.Sprintf("[%d:%s]", i+1, d[:3])
			if e.days[d] {
				b.WriteString(dayOnStyle.Render(label))
			} else {
				b.WriteString(dayOffStyle.Render(label))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("\ntab next field • 1-7 toggle days • enter apply • esc cancel") + "\n")

	return b.String()
}
