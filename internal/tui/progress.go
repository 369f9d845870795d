// internal/tui/progress.go
// Package tui renders a live batch-progress display for long runs.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cardsmith/internal/pipeline"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// BatchMsg reports one completed batch.
type BatchMsg struct {
	Batch    int
	Total    int
	Resolved int
	Size     int
}

// DoneMsg ends the display with the final run summary.
type DoneMsg struct {
	Summary pipeline.Summary
}

// Model is the bubbletea model for the batch progress display.
type Model struct {
	spinner   spinner.Model
	bar       progress.Model
	title     string
	completed int
	total     int
	resolved  int
	processed int
	done      bool
	summary   pipeline.Summary
}

// NewModel constructs the progress display for a run over totalBatches.
func NewModel(title string, totalBatches int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient()),
		title:   title,
		total:   totalBatches,
	}
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the display for batch completions and the final summary.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BatchMsg:
		m.completed++
		m.resolved += msg.Resolved
		m.processed += msg.Size
		var cmd tea.Cmd
		if m.total > 0 {
			cmd = m.bar.SetPercent(float64(m.completed) / float64(m.total))
		}
		return m, cmd
	case DoneMsg:
		m.done = true
		m.summary = msg.Summary
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

// View renders the spinner, bar, and running counts.
func (m Model) View() string {
	if m.done {
		return ""
	}
	status := fmt.Sprintf("batch %d/%d · %d/%d resolved", m.completed, m.total, m.resolved, m.processed)
	line := statusStyle.Render(status)
	if m.processed > m.resolved {
		line += "  " + warnStyle.Render(fmt.Sprintf("%d pending retry or unresolved", m.processed-m.resolved))
	}
	return fmt.Sprintf("%s %s\n%s\n%s\n", m.spinner.View(), titleStyle.Render(m.title), m.bar.View(), line)
}
