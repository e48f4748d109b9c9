package results

import (
	"fmt"
	"strings"

	"github.com/justchokingaround/anisearch/internal/tui/styles"
)

// RenderGenres renders genre tags as styled badges.
// Displays up to maxGenres, with an overflow indicator if there are more.
// Genres in highlight use the selected style.
func RenderGenres(genres []string, highlight func(string) bool, selected bool, maxGenres int) string {
	if len(genres) == 0 {
		return ""
	}

	baseStyle := styles.GenreBadgeStyle
	if selected {
		baseStyle = styles.GenreBadgeSelectedStyle
	}

	displayGenres := genres
	overflow := 0
	if maxGenres > 0 && len(genres) > maxGenres {
		displayGenres = genres[:maxGenres]
		overflow = len(genres) - maxGenres
	}

	parts := make([]string, 0, len(displayGenres)+1)
	for _, genre := range displayGenres {
		style := baseStyle
		if highlight != nil && highlight(genre) {
			style = styles.GenreBadgeSelectedStyle.Bold(true)
		}
		parts = append(parts, style.Render(genre))
	}

	if overflow > 0 {
		parts = append(parts, baseStyle.Render(fmt.Sprintf("+%d more", overflow)))
	}

	return strings.Join(parts, " ")
}
