package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateToLines wraps text and keeps at most maxLines lines, ending the
// last kept line with "..." when text was cut.
func TruncateToLines(text string, maxLines int, maxWidth int) string {
	lines := WrapText(text, maxWidth)
	if len(lines) <= maxLines {
		return strings.Join(lines, "\n")
	}
	if maxLines <= 0 {
		return ""
	}

	result := strings.Join(lines[:maxLines-1], "\n")
	lastLine := lines[maxLines-1]
	if runewidth.StringWidth(lastLine) > maxWidth-3 {
		lastLine = TruncateWithWidth(lastLine, maxWidth)
	} else {
		lastLine += "..."
	}

	if result == "" {
		return lastLine
	}
	return result + "\n" + lastLine
}

// WrapText wraps text at word boundaries to fit within maxWidth
func WrapText(text string, maxWidth int) []string {
	words := strings.Fields(text)

	var lines []string
	var currentLine strings.Builder
	currentWidth := 0

	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)

		switch {
		case currentWidth == 0:
			currentLine.WriteString(word)
			currentWidth = wordWidth
		case currentWidth+1+wordWidth <= maxWidth:
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
			currentWidth += 1 + wordWidth
		default:
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
			currentWidth = wordWidth
		}
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return lines
}

// TruncateWithWidth truncates text to fit within maxWidth display cells,
// adding "..." when it had to cut. Wide (CJK) runes count as two cells.
func TruncateWithWidth(text string, maxWidth int) string {
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}

	width := 0
	for i, r := range text {
		width += runewidth.RuneWidth(r)
		if width > maxWidth-3 {
			return text[:i] + "..."
		}
	}
	return text
}
