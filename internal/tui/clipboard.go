package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/anisearch/internal/tui/common"
)

// setStatus shows text in the footer and schedules it to be cleared
func (a *App) setStatus(text string, isError bool) tea.Cmd {
	a.statusMsg = text
	a.statusIsError = isError
	a.statusMsgTime = time.Now()

	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// copyToClipboardWithNotification copies text to clipboard and reports the result
func (a *App) copyToClipboardWithNotification(text, itemName string) tea.Cmd {
	svc := a.clipboardSvc
	return func() tea.Msg {
		if err := svc.Write(context.Background(), text); err != nil {
			return common.StatusMsg{Text: "✗ Failed to copy " + itemName + ": " + err.Error(), IsError: true}
		}
		return common.StatusMsg{Text: "📋 " + itemName + " copied to clipboard"}
	}
}

// openLink opens url in the system browser
func (a *App) openLink(label, url string) tea.Cmd {
	if url == "" {
		return a.setStatus("✗ No link available", true)
	}
	open := a.openURL
	logger := a.logger
	return func() tea.Msg {
		if err := open(url); err != nil {
			logger.Warn("failed to open browser", "url", url, "error", err)
			return common.StatusMsg{Text: "✗ Could not open " + label + ": " + err.Error(), IsError: true}
		}
		return common.StatusMsg{Text: "✓ Opened " + label}
	}
}
