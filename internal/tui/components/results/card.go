package results

import (
	"fmt"
	"strings"

	"github.com/justchokingaround/anisearch/internal/catalog"
	"github.com/justchokingaround/anisearch/internal/tui/styles"
	"github.com/justchokingaround/anisearch/internal/tui/utils"
)

// CardLines is the height of a rendered card, without spacing
const CardLines = 4

// CardOptions controls how RenderCard draws an anime
type CardOptions struct {
	Width    int
	Selected bool
	Favorite bool
	// HighlightGenre marks genres that match an active filter
	HighlightGenre func(string) bool
}

// RenderCard draws one anime as a bordered card: title, metadata, synopsis
// and genres. Cards always have CardLines lines.
func RenderCard(a catalog.Anime, opts CardOptions) string {
	boxStyle := styles.ListItemStyle
	titleStyle := styles.ListTitleStyle
	metaStyle := styles.MetadataStyle

	if opts.Selected {
		boxStyle = styles.ListItemSelectedStyle
		titleStyle = titleStyle.Foreground(styles.OxocarbonPurple)
		metaStyle = metaStyle.Foreground(styles.OxocarbonMauve)
	}

	availableWidth := opts.Width - 10
	if availableWidth < 40 {
		availableWidth = 40
	}
	if availableWidth > 100 {
		availableWidth = 100
	}

	title := utils.TruncateWithWidth(a.Title, availableWidth-4)
	if opts.Favorite {
		title = styles.FavoriteStyle.Render("♥ ") + titleStyle.Render(title)
	} else {
		title = titleStyle.Render(title)
	}

	lines := []string{title, metaStyle.Render(Metadata(a))}

	synopsis := catalog.Deref(a.Synopsis)
	if synopsis == "" {
		synopsis = "No synopsis available."
	}
	lines = append(lines, styles.SynopsisStyle.Render(utils.TruncateToLines(synopsis, 1, availableWidth)))

	maxGenres := 5
	if opts.Width < 80 {
		maxGenres = 3
	}
	genres := RenderGenres(a.GenreNames(), opts.HighlightGenre, opts.Selected, maxGenres)
	if genres == "" {
		genres = " "
	}
	lines = append(lines, genres)

	return boxStyle.Render(strings.Join(lines, "\n"))
}

// Metadata is the one-line summary of an anime: score, type, episodes, year, status
func Metadata(a catalog.Anime) string {
	var parts []string
	if a.Score != nil {
		parts = append(parts, fmt.Sprintf("★ %.2f", *a.Score))
	}
	if t := catalog.Deref(a.Type); t != "" {
		parts = append(parts, t)
	}
	if a.Episodes != nil {
		label := "episodes"
		if *a.Episodes == 1 {
			label = "episode"
		}
		parts = append(parts, fmt.Sprintf("%d %s", *a.Episodes, label))
	}
	if y := a.YearString(); y != "" {
		parts = append(parts, y)
	}
	if a.Status != "" {
		parts = append(parts, a.Status)
	}
	if len(parts) == 0 {
		return "No details"
	}
	return strings.Join(parts, " • ")
}
