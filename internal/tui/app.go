package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/anisearch/internal/config"
)

// Program runs the interactive search UI
type Program struct {
	app     *App
	program *tea.Program
}

// NewProgram builds the UI. The store in opts must not be nil.
func NewProgram(opts Options) *Program {
	app := NewApp(opts)
	return &Program{
		app:     app,
		program: tea.NewProgram(app, tea.WithAltScreen()),
	}
}

// Run blocks until the user quits. Pending searches are canceled and the
// debouncer stopped before it returns.
func (p *Program) Run() error {
	defer p.app.shutdown()
	if _, err := p.program.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// ApplyConfig hands a reloaded configuration to the running program. It is
// safe to call from the config watcher goroutine.
func (p *Program) ApplyConfig(cfg *config.Config) {
	p.program.Send(configChangedMsg{cfg: cfg})
}
