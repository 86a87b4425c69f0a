// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasker/internal/output"
	"tasker/internal/service"
	"tasker/internal/taskstore"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Run starts the TUI over svc and blocks until the user quits.
func Run(ctx context.Context, svc service.Service) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("ui requires a TTY")
	}
	program := tea.NewProgram(NewModel(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Model is the Bubble Tea model for the task list.
// Every action goes through the service and reloads the list afterwards.
type Model struct {
	ctx    context.Context
	svc    service.Service
	tasks  []taskstore.Task
	cursor int

	adding bool
	input  []rune

	status string
	err    error
}

// NewModel creates a model over svc. The list is loaded by Init.
func NewModel(ctx context.Context, svc service.Service) *Model {
	return &Model{ctx: ctx, svc: svc}
}

// Tasks returns the tasks as last loaded.
func (m *Model) Tasks() []taskstore.Task { return m.tasks }

// Cursor returns the selected index.
func (m *Model) Cursor() int { return m.cursor }

// Adding reports whether the add prompt is open.
func (m *Model) Adding() bool { return m.adding }

// Status returns the last status or error line.
func (m *Model) Status() string {
	if m.err != nil {
		return "error: " + m.err.Error()
	}
	return m.status
}

func (m *Model) Init() tea.Cmd {
	m.reload()
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.adding {
		return m.updateAdding(key)
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case " ", "enter":
		m.completeSelected()
	case "x", "d":
		m.removeSelected()
	case "a":
		m.adding = true
		m.input = nil
		m.status = ""
		m.err = nil
	case "r":
		m.reload()
		if m.err == nil {
			m.status = "reloaded"
		}
	}
	return m, nil
}

func (m *Model) updateAdding(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.adding = false
		m.input = nil
		m.status = "cancelled"
	case tea.KeyEnter:
		m.submitInput()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}
	return m, nil
}

func (m *Model) submitInput() {
	description := strings.TrimSpace(string(m.input))
	if description == "" {
		m.status = "description required"
		return
	}

	m.adding = false
	m.input = nil
	if _, err := m.svc.AddTask(m.ctx, taskstore.Task{Description: description}); err != nil {
		m.err = err
		return
	}
	m.reload()
	if m.err == nil {
		m.cursor = len(m.tasks) - 1
		m.status = "added: " + description
	}
}

func (m *Model) completeSelected() {
	if len(m.tasks) == 0 {
		return
	}
	task, err := m.svc.CompleteTask(m.ctx, m.cursor)
	if err != nil {
		m.reload()
		m.err = err
		return
	}
	m.reload()
	if m.err == nil {
		m.status = "done: " + output.NormalizeDescription(task.Description)
	}
}

func (m *Model) removeSelected() {
	if len(m.tasks) == 0 {
		return
	}
	removed, err := m.svc.DeleteTask(m.ctx, m.cursor)
	if err != nil {
		m.reload()
		m.err = err
		return
	}
	m.reload()
	if m.err == nil {
		m.status = "removed: " + output.NormalizeDescription(removed.Description)
	}
}

// reload fetches the list and keeps the cursor in range.
func (m *Model) reload() {
	tasks, err := m.svc.ListTasks(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.tasks = tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b)
	m.writeTasks(&b)
	m.writePrompt(&b)
	m.writeStatus(&b)
	writeFooter(&b, m.adding)
	return b.String()
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Tasks") + "\n\n")
}

func (m *Model) writeTasks(b *strings.Builder) {
	if len(m.tasks) == 0 {
		b.WriteString("  No tasks. Press a to add one.\n\n")
		return
	}
	for i, task := range m.tasks {
		line := fmt.Sprintf("%4d  %s %s", i+1, output.Mark(task), output.NormalizeDescription(task.Description))
		if task.Done {
			line = doneStyle.Render(line)
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render(">") + line + "\n")
			continue
		}
		b.WriteString(" " + line + "\n")
	}
	b.WriteString("\n")
}

func (m *Model) writePrompt(b *strings.Builder) {
	if !m.adding {
		return
	}
	b.WriteString("New task: " + string(m.input) + "_\n\n")
}

func (m *Model) writeStatus(b *strings.Builder) {
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.Status()) + "\n\n")
	case m.status != "":
		b.WriteString(m.status + "\n\n")
	}
}

func writeFooter(b *strings.Builder, adding bool) {
	if adding {
		b.WriteString(footerStyle.Render("enter save | esc cancel") + "\n")
		return
	}
	b.WriteString(footerStyle.Render("j/k move | space done | x remove | a add | r reload | q quit") + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
