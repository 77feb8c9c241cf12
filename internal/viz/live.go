package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rasterlife/internal/life"
)

const historyCapacity = 600

var (
	boardStyle  = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives a live Game of Life view: it owns the engine, steps it on
// ticks, and renders the board next to a population chart.
type Model struct {
	eng        *life.Engine
	style      Style
	frameRate  int
	running    bool
	population []float64
	err        error
}

// NewModel wraps an engine for live display at the given frame rate.
func NewModel(eng *life.Engine, style Style, frameRate int) Model {
	if frameRate < 1 {
		frameRate = 10
	}
	return Model{
		eng:        eng,
		style:      style,
		frameRate:  frameRate,
		running:    true,
		population: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the engine on ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.eng.Reset()
			m.population = m.population[:0]
		}
	case TickMsg:
		if m.running && m.err == nil {
			if err := m.eng.Cycle(context.Background(), 1, 1); err != nil {
				m.err = err
				m.running = false
			} else {
				m.population = append(m.population, float64(m.eng.Population()))
				if len(m.population) > historyCapacity {
					m.population = m.population[1:]
				}
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// View renders the board and the stats panel.
func (m Model) View() string {
	board := boardStyle.Render(m.style.Render(m.eng.Current()))

	var s strings.Builder
	s.WriteString(headerStyle.Render("GAME OF LIFE") + "\n")
	if m.err != nil {
		s.WriteString(fmt.Sprintf("ERROR: %v\n", m.err))
	} else if m.running {
		s.WriteString("RUNNING\n")
	} else {
		s.WriteString("PAUSED\n")
	}

	if len(m.population) > 1 {
		chart := asciigraph.Plot(m.population, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Population"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	g := m.eng.Current()
	s.WriteString(labelStyle.Render("Generation") + valueStyle.Render(fmt.Sprintf("%d", m.eng.Generation())) + "\n")
	s.WriteString(labelStyle.Render("Population") + valueStyle.Render(fmt.Sprintf("%d", m.eng.Population())) + "\n")
	s.WriteString(labelStyle.Render("Board") + valueStyle.Render(fmt.Sprintf("%dx%d", g.Rows(), g.Cols())) + "\n")
	s.WriteString(labelStyle.Render("CRS") + valueStyle.Render(fmt.Sprintf("EPSG:%d", g.Geo().EPSG)) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, board, statsStyle.Render(s.String()))
}

// RunLive starts the interactive live view and blocks until it exits.
func RunLive(eng *life.Engine, style Style, frameRate int) error {
	p := tea.NewProgram(NewModel(eng, style, frameRate))
	_, err := p.Run()
	return err
}
