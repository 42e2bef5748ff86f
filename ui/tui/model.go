// Package tui is the terminal front end: the same two inputs, progress bar
// and single outcome message as the window, drawn with bubbletea.
package tui

import (
	"strings"

	"dh-debias/internal/app"
	"dh-debias/internal/job"
	"dh-debias/internal/progress"
	"dh-debias/internal/uiloop"

	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DrainMsg asks the model to run the messages queued by the worker.
type DrainMsg struct{}

// Wake returns the queue wake function for p: every post becomes a
// DrainMsg handled on the bubbletea goroutine.
func Wake(p *tea.Program) func(drain func()) {
	return func(func()) { p.Send(DrainMsg{}) }
}

// StartFunc launches the job. The default is job.Start with a runner.
type StartFunc func(j *job.Job, n job.Notifier)

const (
	focusGrid = iota
	focusMask
	focusStart
	focusCount
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("137"))
	captionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("137")).Foreground(lipgloss.Color("231"))
	disabledStyle = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("238")).Foreground(lipgloss.Color("245"))
	focusedStyle  = lipgloss.NewStyle().Underline(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// bar is the progress.Display of the terminal. It is only touched from
// Update, which runs on the bubbletea goroutine.
type bar struct {
	value float64
	label string
}

func (b *bar) SetValue(v float64)   { b.value = v }
func (b *bar) SetLabel(text string) { b.label = text }

// session is the state shared by every copy of the model.
type session struct {
	state    *app.State
	queue    *uiloop.Queue
	bar      *bar
	reporter *progress.Reporter
	start    StartFunc
}

// Model is the bubbletea model.
type Model struct {
	s      *session
	inputs [2]textinput.Model
	focus  int
	meter  bprogress.Model
	width  int
}

// New returns the model. queue must be the queue whose wake sends DrainMsg
// to the program running this model.
func New(queue *uiloop.Queue, start StartFunc) Model {
	b := &bar{label: job.StageSetup.Label()}
	s := &session{
		state:    app.NewState(),
		queue:    queue,
		bar:      b,
		reporter: progress.NewReporter(b),
		start:    start,
	}

	grid := textinput.New()
	grid.Placeholder = "path to the dh map (GeoTIFF)"
	grid.Prompt = "> "
	grid.Focus()
	mask := textinput.New()
	mask.Placeholder = "path to the unstable-terrain shapefile"
	mask.Prompt = "> "

	return Model{
		s:      s,
		inputs: [2]textinput.Model{grid, mask},
		meter:  bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithWidth(48)),
	}
}

// State exposes the UI state.
func (m Model) State() *app.State {
	return m.s.state
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DrainMsg:
		m.s.queue.Drain()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 8; w > 10 && w < 80 {
			m.meter.Width = w
		}
		return m, nil
	case tea.KeyMsg:
		switch m.s.state.Phase {
		case app.PhaseInput:
			return m.updateInput(msg)
		case app.PhaseFinished:
			switch msg.String() {
			case "enter", "esc", "q", "ctrl+c":
				return m, tea.Quit
			}
		}
		// A running job cannot be interrupted.
		return m, nil
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		return m.setFocus((m.focus + 1) % focusCount), nil
	case "shift+tab", "up":
		return m.setFocus((m.focus + focusCount - 1) % focusCount), nil
	case "enter":
		if m.focus != focusStart {
			return m.setFocus(m.focus + 1), nil
		}
		return m.begin()
	}

	if m.focus == focusStart {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.s.state.SetGrid(m.inputs[focusGrid].Value())
	m.s.state.SetMask(m.inputs[focusMask].Value())
	return m, cmd
}

func (m Model) setFocus(f int) Model {
	m.focus = f
	for i := range m.inputs {
		if i == f {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m Model) begin() (tea.Model, tea.Cmd) {
	j, err := m.s.state.Begin()
	if err != nil {
		return m, nil
	}
	n := job.Marshal(m.s.queue, m.s.reporter, m.s.state.Finish)
	m.s.start(j, n)
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pleiades debiasing"))
	b.WriteString("\n\n")

	switch m.s.state.Phase {
	case app.PhaseInput:
		m.viewInputs(&b)
	case app.PhaseRunning:
		m.viewProgress(&b)
	case app.PhaseFinished:
		m.viewOutcome(&b)
	}
	return b.String()
}

func (m Model) viewInputs(b *strings.Builder) {
	b.WriteString(captionStyle.Render("Grid to be debiased"))
	b.WriteString("\n")
	b.WriteString(m.inputs[focusGrid].View())
	b.WriteString("\n\n")
	b.WriteString(captionStyle.Render("Shapefile of unstable terrain"))
	b.WriteString("\n")
	b.WriteString(m.inputs[focusMask].View())
	b.WriteString("\n\n")

	style := disabledStyle
	if m.s.state.CanStart() {
		style = buttonStyle
	}
	button := style.Render("Start debiasing")
	if m.focus == focusStart {
		button = focusedStyle.Render(button)
	}
	b.WriteString(button)
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("tab: next field  enter: confirm  esc: quit"))
}

func (m Model) viewProgress(b *strings.Builder) {
	b.WriteString(m.meter.ViewAs(m.s.bar.value / progress.Max))
	b.WriteString("\n")
	b.WriteString(m.s.bar.label)
	b.WriteString("\n")
}

func (m Model) viewOutcome(b *strings.Builder) {
	o := m.s.state.Outcome
	if o.Succeeded() {
		b.WriteString(okStyle.Render(o.Title()))
	} else {
		b.WriteString(errorStyle.Render(o.Title()))
	}
	b.WriteString("\n\n")
	text := strings.Replace(o.Text(), "Click OK to exit.", "Press Enter to exit.", 1)
	b.WriteString(text)
	b.WriteString("\n")
}

// Percent is the bar position in [0, 1].
func (m Model) Percent() float64 {
	return m.s.bar.value / progress.Max
}
