// Package tui runs a countdown or stopwatch in the terminal, for machines
// without a display.
package tui

import (
	"context"
	"fmt"
	"strings"

	"timeapp/internal/audio"
	"timeapp/internal/core/model"
	"timeapp/internal/core/timekeeper"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the Bubble Tea model for a single timer.
type Model struct {
	keeper *timekeeper.TimeKeeper
	player *audio.Player
	track  string
	styles Styles
	keys   keyMap
	help   help.Model
	events <-chan timekeeper.Event

	value    int
	phase    timekeeper.Phase
	expired  int
	quitting bool
}

// Compile-time interface compliance check
var _ tea.Model = (*Model)(nil)

type (
	eventMsg  timekeeper.Event
	closedMsg struct{}
)

// NewModel wraps keeper. In stopwatch mode track plays on a loop while the
// timer runs; in countdown mode the alarm plays once on expiry. player may be nil.
func NewModel(keeper *timekeeper.TimeKeeper, player *audio.Player, track string) *Model {
	state := keeper.State()
	styles := DefaultStyles()
	helpModel := help.New()
	helpModel.Styles.ShortDesc = styles.Muted
	helpModel.Styles.ShortSeparator = styles.Muted
	return &Model{
		keeper: keeper,
		player: player,
		track:  track,
		styles: styles,
		keys:   defaultKeyMap(),
		help:   helpModel,
		events: keeper.Subscribe(32),
		value:  state.Value,
		phase:  keeper.Phase(),
	}
}

// Run drives m until the user quits or ctx is done.
func Run(ctx context.Context, m *Model) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	m.shutdown()
	if err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.shutdown()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.toggle()
		case key.Matches(msg, m.keys.Reset):
			m.keeper.Reset()
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case eventMsg:
		m.value = msg.Value
		m.phase = msg.Phase
		if msg.Type == timekeeper.EventExpired {
			m.expired++
			m.play(audio.TrackAlarm, false)
		}
		return m, waitForEvent(m.events)

	case closedMsg:
		return m, nil
	}
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	title := "Countdown"
	if m.keeper.Mode() == model.ModeStopwatch {
		title = "Timer"
		if m.track != "" {
			title = fmt.Sprintf("Timer · %s", m.track)
		}
	}

	var status string
	switch m.phase {
	case timekeeper.PhaseRunning:
		status = m.styles.Running.Render("running")
	case timekeeper.PhaseExpired:
		status = m.styles.Expired.Render("time's up!")
	case timekeeper.PhasePaused:
		status = m.styles.Paused.Render("paused")
	default:
		status = m.styles.Paused.Render("ready")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Clock.Render(timekeeper.FormatClock(m.value)))
	b.WriteString("\n")
	b.WriteString(status)
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) toggle() {
	if m.keeper.Running() {
		m.keeper.Pause()
		if m.keeper.Mode() == model.ModeStopwatch {
			m.stop()
		}
		return
	}
	if m.keeper.Phase() == timekeeper.PhaseExpired {
		m.keeper.Reset()
	}
	m.keeper.Start()
	if m.keeper.Mode() == model.ModeStopwatch && m.track != "" {
		m.play(m.track, true)
	}
}

func (m *Model) play(track string, loop bool) {
	if m.player != nil {
		m.player.Play(track, loop)
	}
}

func (m *Model) stop() {
	if m.player != nil {
		m.player.Stop()
	}
}

func (m *Model) shutdown() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.keeper.Close()
	m.stop()
}

func waitForEvent(events <-chan timekeeper.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(event)
	}
}
