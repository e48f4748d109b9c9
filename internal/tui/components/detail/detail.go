package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/justchokingaround/anisearch/internal/catalog"
	"github.com/justchokingaround/anisearch/internal/tui/common"
	"github.com/justchokingaround/anisearch/internal/tui/components/results"
	"github.com/justchokingaround/anisearch/internal/tui/styles"
)

// Model shows one anime in a scrollable box
type Model struct {
	viewport viewport.Model
	anime    *catalog.Anime
	favorite bool
	loading  bool
	err      string
	ready    bool
	Width    int
	Height   int
}

func New() *Model {
	vp := viewport.New(0, 0)
	vp.YPosition = styles.TitleStyle.GetVerticalFrameSize()
	return &Model{viewport: vp}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, func() tea.Msg { return common.BackMsg{} }
		}

		if m.anime == nil {
			return m, nil
		}
		a := *m.anime

		switch msg.String() {
		case "f":
			return m, func() tea.Msg { return common.ToggleFavoriteMsg{Anime: a} }
		case "s":
			return m, func() tea.Msg { return common.OpenShareMenuMsg{Title: a.Title, URL: a.URL} }
		case "t":
			if trailer := a.TrailerURL(); trailer != "" {
				return m, func() tea.Msg { return common.OpenURLMsg{Label: "trailer", URL: trailer} }
			}
			return m, func() tea.Msg { return common.StatusMsg{Text: "No trailer available", IsError: true} }
		case "o":
			if a.URL != "" {
				return m, func() tea.Msg { return common.OpenURLMsg{Label: "MyAnimeList page", URL: a.URL} }
			}
		case "y":
			if a.URL != "" {
				return m, func() tea.Msg { return common.CopyToClipboardMsg{Label: "Link", Text: a.URL} }
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) SetSize(width, height int) {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	m.Width = width
	m.Height = height

	// Border (2) + Padding (2) horizontally, header and help below
	vpWidth := max(20, width-4)
	vpHeight := max(5, height-6)

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.refresh()
}

// SetLoading shows the loading state and clears any previous anime
func (m *Model) SetLoading() {
	m.loading = true
	m.err = ""
	m.anime = nil
	m.refresh()
}

// SetError shows a failed lookup
func (m *Model) SetError(err string) {
	m.loading = false
	m.err = err
	m.anime = nil
	m.refresh()
}

// SetAnime shows a, scrolled to the top
func (m *Model) SetAnime(a *catalog.Anime, favorite bool) {
	m.loading = false
	m.err = ""
	m.anime = a
	m.favorite = favorite
	m.refresh()
	m.viewport.GotoTop()
}

// SetFavorite updates the favorite marker without moving the scroll position
func (m *Model) SetFavorite(favorite bool) {
	m.favorite = favorite
	m.refresh()
}

// Anime returns the displayed anime, or nil
func (m *Model) Anime() *catalog.Anime {
	return m.anime
}

func (m *Model) refresh() {
	width := m.Width - 6
	if width < 20 {
		width = 76
	}

	var content string
	switch {
	case m.loading:
		content = styles.MetadataStyle.Render("Loading anime details...")
	case m.err != "":
		content = styles.ErrorStyle.Render("✗ "+m.err) + "\n\n" +
			styles.MetadataStyle.Render("Press esc to go back.")
	case m.anime != nil:
		content = Render(*m.anime, m.favorite, width)
	}

	m.viewport.SetContent(lipgloss.NewStyle().Width(width).Render(content))
}

func (m *Model) View() string {
	header := styles.TitleStyle.Render("  DETAILS  ")
	if m.anime != nil && m.favorite {
		header += " " + styles.FavoriteStyle.Render("♥ favorite")
	}

	boxWidth := m.Width - 2
	if boxWidth < 20 {
		boxWidth = 78
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OxocarbonPurple).
		Padding(0, 1).
		Width(boxWidth).
		Render(m.viewport.View())

	help := styles.HelpStyle.Render("  ↑/↓ scroll • f favorite • s share • t trailer • o open • y copy link • esc back")
	return fmt.Sprintf("%s\n%s\n%s", header, box, help)
}

// Render lays out every detail of a for a box of the given width
func Render(a catalog.Anime, favorite bool, width int) string {
	var b strings.Builder

	b.WriteString(styles.ListTitleStyle.Foreground(styles.OxocarbonPurple).Render(a.Title))
	if en := a.EnglishTitle(); en != "" {
		b.WriteString("\n" + styles.SubtitleStyle.Render(en))
	}
	if jp := catalog.Deref(a.TitleJapanese); jp != "" {
		b.WriteString("\n" + styles.MetadataStyle.Render(jp))
	}
	b.WriteString("\n")
	if badge := styles.FormatStatusBadge(a.Status); badge != "" {
		b.WriteString(badge + "\n")
	}
	if favorite {
		b.WriteString(styles.FavoriteStyle.Render("♥ In your favorites") + "\n")
	}

	b.WriteString("\n" + renderStats(a) + "\n")

	b.WriteString(styles.HeaderStyle.Render("Information") + "\n")
	for _, row := range infoRows(a) {
		b.WriteString(styles.MetadataStyle.Render(fmt.Sprintf("%-10s", row[0])) + " " + row[1] + "\n")
	}

	if genres := results.RenderGenres(a.GenreNames(), nil, false, 0); genres != "" {
		b.WriteString(styles.HeaderStyle.Render("Genres") + "\n" + genres + "\n")
	}

	b.WriteString(styles.HeaderStyle.Render("Synopsis") + "\n")
	synopsis := catalog.Deref(a.Synopsis)
	if synopsis == "" {
		synopsis = "No synopsis available."
	}
	b.WriteString(styles.SynopsisStyle.Width(width).Render(synopsis) + "\n")

	if bg := catalog.Deref(a.Background); bg != "" {
		b.WriteString(styles.HeaderStyle.Render("Background") + "\n")
		b.WriteString(styles.SynopsisStyle.Width(width).Render(bg) + "\n")
	}

	b.WriteString(styles.HeaderStyle.Render("Links") + "\n")
	if a.URL != "" {
		b.WriteString(styles.MetadataStyle.Render("MyAnimeList ") + styles.URLStyle.Render(a.URL) + "\n")
	}
	if trailer := a.TrailerURL(); trailer != "" {
		b.WriteString(styles.MetadataStyle.Render("Trailer     ") + styles.URLStyle.Render(trailer) + "\n")
	}
	if cover := a.CoverURL(); cover != "" {
		b.WriteString(styles.MetadataStyle.Render("Cover       ") + styles.URLStyle.Render(cover) + "\n")
	}

	return b.String()
}

func renderStats(a catalog.Anime) string {
	var stats []string
	if a.Score != nil {
		score := styles.ScoreStyle.Render(fmt.Sprintf("★ %.2f", *a.Score))
		if a.ScoredBy != nil {
			score += styles.MetadataStyle.Render(fmt.Sprintf(" (%s users)", humanize.Comma(int64(*a.ScoredBy))))
		}
		stats = append(stats, score)
	}
	if a.Rank != nil {
		stats = append(stats, styles.MetadataStyle.Render("Rank ")+styles.ListTitleStyle.Render(fmt.Sprintf("#%d", *a.Rank)))
	}
	if a.Popularity != nil {
		stats = append(stats, styles.MetadataStyle.Render("Popularity ")+styles.ListTitleStyle.Render(fmt.Sprintf("#%d", *a.Popularity)))
	}
	if a.Members != nil {
		stats = append(stats, styles.MetadataStyle.Render("Members ")+styles.ListTitleStyle.Render(humanize.Comma(int64(*a.Members))))
	}
	if a.Favorites != nil {
		stats = append(stats, styles.FavoriteStyle.Render("♥ ")+styles.ListTitleStyle.Render(humanize.Comma(int64(*a.Favorites))))
	}
	return strings.Join(stats, "   ")
}

func infoRows(a catalog.Anime) [][2]string {
	var rows [][2]string
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, [2]string{label, value})
		}
	}

	add("Type", catalog.Deref(a.Type))
	if a.Episodes != nil {
		add("Episodes", fmt.Sprint(*a.Episodes))
	}
	add("Aired", a.Aired.String)
	season := catalog.Deref(a.Season)
	if season != "" {
		season = strings.ToUpper(season[:1]) + season[1:]
		if y := a.YearString(); y != "" {
			season += " " + y
		}
	}
	add("Season", season)
	add("Duration", catalog.Deref(a.Duration))
	add("Rating", catalog.Deref(a.Rating))
	add("Source", catalog.Deref(a.Source))
	add("Studios", joinNames(a.Studios))
	add("Themes", joinNames(a.Themes))
	return rows
}

func joinNames(entities []catalog.Entity) string {
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Name)
	}
	return strings.Join(names, ", ")
}
