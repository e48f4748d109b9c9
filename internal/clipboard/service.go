package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// Service copies text to the system clipboard
type Service interface {
	Write(ctx context.Context, text string) error
}

// Logger interface for clipboard operations
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

type clipboardService struct {
	logger  Logger
	command string
	// writeAll is the primary clipboard backend
	writeAll func(string) error
}

// NewService creates a clipboard service. command, when set, is the
// fallback used if the system clipboard cannot be reached.
func NewService(logger Logger, command string) Service {
	return &clipboardService{
		logger:   logger,
		command:  command,
		writeAll: clipboard.WriteAll,
	}
}

// Write copies text, falling back to a clipboard command when the primary
// backend fails
func (s *clipboardService) Write(ctx context.Context, text string) error {
	err := s.writeAll(text)
	if err == nil {
		s.logger.Debug("copied to clipboard", "text_length", len(text))
		return nil
	}
	s.logger.Warn("failed to copy to clipboard using primary method", "error", err)

	parts, err := s.fallbackCommand()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		s.logger.Error("clipboard command failed", "error", err, "command", parts[0])
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	s.logger.Debug("copied to clipboard", "command", parts[0], "text_length", len(text))
	return nil
}

func (s *clipboardService) fallbackCommand() ([]string, error) {
	if s.command != "" {
		parts := parseCommand(s.command)
		if len(parts) == 0 {
			return nil, fmt.Errorf("invalid clipboard command in config: %s", s.command)
		}
		return parts, nil
	}

	switch runtime.GOOS {
	case "windows":
		return []string{"clip.exe"}, nil
	case "darwin":
		return []string{"pbcopy"}, nil
	case "linux":
		if isWSL() {
			return []string{"clip.exe"}, nil
		}
		switch {
		case commandExists("wl-copy"):
			return []string{"wl-copy"}, nil
		case commandExists("xclip"):
			return []string{"xclip", "-selection", "clipboard"}, nil
		case commandExists("xsel"):
			return []string{"xsel", "--clipboard", "--input"}, nil
		}
		return nil, errors.New("no clipboard tool found (install xclip, xsel, or wl-clipboard)")
	}
	return nil, fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
}

// parseCommand parses a command string into executable parts, respecting quotes
func parseCommand(command string) []string {
	var parts []string
	var current strings.Builder
	var inQuotes bool
	var quoteChar rune

	for _, char := range command {
		switch {
		case char == '\'' || char == '"':
			if !inQuotes {
				inQuotes = true
				quoteChar = char
			} else if char == quoteChar {
				inQuotes = false
			} else {
				current.WriteRune(char)
			}
		case char == ' ' && !inQuotes:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// isWSL checks for "microsoft" in the kernel version string
func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
