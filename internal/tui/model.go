package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"

	"github.com/justchokingaround/anisearch/internal/clipboard"
	"github.com/justchokingaround/anisearch/internal/config"
	"github.com/justchokingaround/anisearch/internal/debounce"
	searchstore "github.com/justchokingaround/anisearch/internal/search"
	"github.com/justchokingaround/anisearch/internal/tui/common"
	"github.com/justchokingaround/anisearch/internal/tui/components/detail"
	"github.com/justchokingaround/anisearch/internal/tui/components/favorites"
	"github.com/justchokingaround/anisearch/internal/tui/components/filter"
	"github.com/justchokingaround/anisearch/internal/tui/components/help"
	"github.com/justchokingaround/anisearch/internal/tui/components/results"
	"github.com/justchokingaround/anisearch/internal/tui/components/search"
	"github.com/justchokingaround/anisearch/internal/tui/components/sharemenu"
	"github.com/justchokingaround/anisearch/internal/tui/styles"
)

type sessionState int

const (
	searchView sessionState = iota
	detailView
	favoritesView
)

type overlayKind int

const (
	noOverlay overlayKind = iota
	filterOverlay
	shareOverlay
)

// clearStatusMsg is an internal message to clear the status message
type clearStatusMsg struct{}

// favoriteToggledMsg reports the result of a favorites write
type favoriteToggledMsg struct {
	title string
	added bool
	err   error
}

// configChangedMsg carries a reloaded configuration into the program
type configChangedMsg struct {
	cfg *config.Config
}

const (
	defaultDebounce        = 250 * time.Millisecond
	defaultMaxVisiblePages = 5
	statusDuration         = 2500 * time.Millisecond
)

type App struct {
	state         sessionState
	previousState sessionState
	overlay       overlayKind
	width         int
	height        int

	search             search.Model
	results            results.Model
	detailComponent    *detail.Model
	favoritesComponent favorites.Model
	filterPanel        filter.Model
	shareMenu          sharemenu.Model
	helpComponent      help.Model
	spinner            spinner.Model
	spinning           bool

	store     *searchstore.Store
	debouncer *debounce.Debouncer[string]
	ctx       context.Context

	// For sending messages to UI from goroutines
	msgChan chan tea.Msg

	maxVisiblePages int

	// Status message (shown briefly at bottom)
	statusMsg     string
	statusIsError bool
	statusMsgTime time.Time

	logger       *slog.Logger
	clipboardSvc clipboard.Service
	openURL      func(string) error
}

// Options configures NewApp
type Options struct {
	Store     *searchstore.Store
	Clipboard clipboard.Service
	Config    *config.Config
	Logger    *slog.Logger

	// Query is searched immediately when set
	Query string
}

func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)

	clipboardSvc := opts.Clipboard
	if clipboardSvc == nil {
		command := ""
		if opts.Config != nil {
			command = opts.Config.Advanced.Clipboard.Command
		}
		clipboardSvc = clipboard.NewService(logger, command)
	}

	a := &App{
		state:              searchView,
		search:             search.New(),
		results:            results.New(),
		detailComponent:    detail.New(),
		favoritesComponent: favorites.New(),
		filterPanel:        filter.New(time.Now()),
		shareMenu:          sharemenu.New(),
		helpComponent:      help.New(),
		spinner:            s,
		store:              opts.Store,
		ctx:                context.Background(),
		msgChan:            make(chan tea.Msg, 100),
		maxVisiblePages:    defaultMaxVisiblePages,
		logger:             logger,
		clipboardSvc:       clipboardSvc,
		openURL:            browser.OpenURL,
	}

	delay := defaultDebounce
	if opts.Config != nil {
		delay = opts.Config.Search.Debounce
		if opts.Config.UI.MaxVisiblePages > 0 {
			a.maxVisiblePages = opts.Config.UI.MaxVisiblePages
		}
	}
	a.debouncer = debounce.New(delay, func(query string) {
		a.msgChan <- common.PerformSearchMsg{Query: query, Page: 1}
	})

	a.results.SetFavoriteFunc(a.store.IsFavorite)
	if opts.Query != "" {
		a.search.SetValue(opts.Query)
		a.store.SetQuery(opts.Query)
		a.msgChan <- common.PerformSearchMsg{Query: opts.Query, Page: 1}
	}

	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.search.Init(),
		a.listenForMessages(),
	)
}

// listenForMessages listens for messages from background goroutines
func (a *App) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		return <-a.msgChan
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleWindowSize(msg)
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case common.QueryChangedMsg:
		return a.handleQueryChangedMsg(msg)
	case common.SubmitSearchMsg:
		return a.handleSubmitSearchMsg(msg)
	case common.PerformSearchMsg:
		// Re-arm the listener; the debouncer delivers through msgChan
		model, cmd := a.handlePerformSearchMsg(msg)
		return model, tea.Batch(cmd, a.listenForMessages())
	case common.SearchFinishedMsg:
		return a.handleSearchFinishedMsg(msg)
	case common.ChangePageMsg:
		return a.handleChangePageMsg(msg)

	case common.AnimeSelectedMsg:
		return a.handleAnimeSelectedMsg(msg)
	case common.DetailLoadedMsg:
		return a.handleDetailLoadedMsg(msg)
	case common.ToggleFavoriteMsg:
		return a.handleToggleFavoriteMsg(msg)
	case favoriteToggledMsg:
		return a.handleFavoriteToggledMsg(msg)

	case common.OpenFilterPanelMsg:
		return a.handleOpenFilterPanelMsg()
	case common.ToggleGenreMsg:
		a.store.ToggleGenre(msg.Genre)
		a.syncResults()
		return a, nil
	case common.SetYearMsg:
		a.store.SetYear(msg.Year)
		a.syncResults()
		return a, nil
	case common.SetSortMsg:
		a.store.SetSort(msg.Mode)
		a.syncResults()
		return a, nil
	case common.ClearFiltersMsg:
		a.store.ClearFilters()
		a.syncResults()
		return a, a.setStatus("✓ Filters cleared", false)

	case common.OpenShareMenuMsg:
		a.shareMenu.Open(msg.Title, msg.URL)
		a.overlay = shareOverlay
		return a, nil
	case common.OpenURLMsg:
		a.overlay = noOverlay
		return a, a.openLink(msg.Label, msg.URL)
	case common.CopyToClipboardMsg:
		a.overlay = noOverlay
		return a, a.copyToClipboardWithNotification(msg.Text, msg.Label)
	case common.StatusMsg:
		return a, a.setStatus(msg.Text, msg.IsError)
	case clearStatusMsg:
		if time.Since(a.statusMsgTime) >= statusDuration-100*time.Millisecond {
			a.statusMsg = ""
			a.statusIsError = false
		}
		return a, nil

	case common.BackMsg:
		return a.handleBackMsg()
	case common.GoToFavoritesMsg:
		return a.handleGoToFavoritesMsg()
	case common.GoToSearchMsg:
		return a.handleGoToSearchMsg()

	case configChangedMsg:
		a.applyConfig(msg.cfg)
		return a, nil

	case spinner.TickMsg:
		snap := a.store.Snapshot()
		if !snap.Loading && !snap.DetailLoading {
			a.spinning = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a.updateFocused(msg)
}

func (a *App) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height

	var cmds []tea.Cmd
	var model tea.Model
	var cmd tea.Cmd

	model, cmd = a.search.Update(msg)
	a.search = model.(search.Model)
	cmds = append(cmds, cmd)

	model, cmd = a.results.Update(msg)
	a.results = model.(results.Model)
	cmds = append(cmds, cmd)

	model, cmd = a.favoritesComponent.Update(msg)
	a.favoritesComponent = model.(favorites.Model)
	cmds = append(cmds, cmd)

	model, cmd = a.filterPanel.Update(msg)
	a.filterPanel = model.(filter.Model)
	cmds = append(cmds, cmd)

	model, cmd = a.shareMenu.Update(msg)
	a.shareMenu = model.(sharemenu.Model)
	cmds = append(cmds, cmd)

	// Header takes two lines
	a.detailComponent.SetSize(msg.Width, msg.Height-2)

	a.helpComponent, cmd = a.helpComponent.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// updateFocused passes non-key messages (cursor blink and the like) to the
// component that owns the screen
func (a *App) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var model tea.Model
	var cmd tea.Cmd

	switch a.state {
	case searchView:
		model, cmd = a.search.Update(msg)
		a.search = model.(search.Model)
	case detailView:
		_, cmd = a.detailComponent.Update(msg)
	case favoritesView:
		model, cmd = a.favoritesComponent.Update(msg)
		a.favoritesComponent = model.(favorites.Model)
	}
	return a, cmd
}

// syncResults copies the store's derived list and paging into the results view
func (a *App) syncResults() {
	snap := a.store.Snapshot()

	a.results.SetItems(a.store.Displayed())
	a.results.SetGenreHighlight(snap.Filters.HasGenre)
	a.results.SetPage(results.Page{
		Current:     snap.CurrentPage,
		Total:       snap.TotalPages,
		HasNext:     snap.HasNextPage,
		Window:      a.store.PageWindow(a.maxVisiblePages),
		TotalItems:  len(snap.Results),
		FilterCount: a.store.ActiveFilterCount(),
	})
	a.filterPanel.SetState(snap.Filters, snap.Sort)
}

func (a *App) startSpinner() tea.Cmd {
	if a.spinning {
		return nil
	}
	a.spinning = true
	return a.spinner.Tick
}

func (a *App) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	a.debouncer.SetDelay(cfg.Search.Debounce)
	if cfg.UI.MaxVisiblePages > 0 {
		a.maxVisiblePages = cfg.UI.MaxVisiblePages
	}
	a.syncResults()
	a.logger.Debug("configuration applied",
		"debounce", cfg.Search.Debounce,
		"max_visible_pages", a.maxVisiblePages,
	)
}

// shutdown stops background work before the program exits
func (a *App) shutdown() {
	a.debouncer.Stop()
	a.store.Cancel()
}

func (a *App) View() string {
	finalView := a.renderHeader() + a.renderView()

	if a.overlay != noOverlay {
		var popup string
		switch a.overlay {
		case filterOverlay:
			popup = a.filterPanel.View()
		case shareOverlay:
			popup = a.shareMenu.View()
		}
		finalView = lipgloss.Place(
			max(a.width, lipgloss.Width(finalView)),
			max(a.height, lipgloss.Height(finalView)),
			lipgloss.Center,
			lipgloss.Center,
			popup,
			lipgloss.WithWhitespaceBackground(styles.OxocarbonBlack),
			lipgloss.WithWhitespaceForeground(styles.OxocarbonBlack),
		)
	}

	if a.inputModeActive() {
		finalView = a.withFooter(finalView, styles.FooterStyle.
			Background(styles.OxocarbonPurple).
			Foreground(styles.OxocarbonBase00).
			Bold(true).
			Align(lipgloss.Center), "⌨ INPUT MODE")
	} else if a.statusMsg != "" {
		color := styles.OxocarbonCyan
		if a.statusIsError {
			color = styles.OxocarbonPink
		} else if strings.HasPrefix(a.statusMsg, "✓") {
			color = styles.OxocarbonGreen
		} else if strings.HasPrefix(a.statusMsg, "📋") {
			color = styles.OxocarbonBlue
		}
		finalView = a.withFooter(finalView, styles.FooterStyle.
			Background(color).
			Foreground(styles.OxocarbonBase00).
			Bold(true), a.statusMsg)
	}

	if a.helpComponent.IsVisible() {
		return lipgloss.Place(
			a.width,
			a.height,
			lipgloss.Center,
			lipgloss.Center,
			a.helpComponent.View(),
			lipgloss.WithWhitespaceBackground(styles.OxocarbonBlack),
			lipgloss.WithWhitespaceForeground(styles.OxocarbonBlack),
		)
	}

	return finalView
}

// withFooter replaces the bottom line of view with a full width bar so the
// layout does not shift while the bar is shown
func (a *App) withFooter(view string, style lipgloss.Style, text string) string {
	width := a.width
	if width == 0 {
		width = 80
	}

	view = strings.TrimRight(view, "\n")
	if a.height > 1 {
		lines := strings.Split(view, "\n")
		if len(lines) >= a.height {
			view = strings.Join(lines[:a.height-1], "\n")
		}
	}
	return view + "\n" + style.Width(width).Render(text)
}

func (a *App) inputModeActive() bool {
	return a.state == favoritesView && a.overlay == noOverlay && a.favoritesComponent.IsInputActive()
}

func (a *App) renderHeader() string {
	header := styles.TitleStyle.Render("  anisearch  ")

	count := len(a.store.Favorites())
	favBadge := lipgloss.NewStyle().
		Foreground(styles.OxocarbonBase00).
		Background(styles.OxocarbonMagenta).
		Padding(0, 1).
		Bold(true).
		Render(fmt.Sprintf("♥ %d", count))

	return lipgloss.JoinHorizontal(lipgloss.Center, header, "  ", favBadge) + "\n\n"
}

func (a *App) renderView() string {
	switch a.state {
	case detailView:
		view := a.detailComponent.View()
		if a.store.Snapshot().DetailLoading {
			view = a.spinner.View() + " Loading...\n" + view
		}
		return view
	case favoritesView:
		return a.favoritesComponent.View()
	}

	var b strings.Builder
	b.WriteString(a.search.View())
	b.WriteString("\n")

	snap := a.store.Snapshot()
	switch {
	case snap.Loading:
		b.WriteString("  " + a.spinner.View() + " " +
			styles.MetadataStyle.Render(fmt.Sprintf("Searching for %q...", snap.Query)) + "\n")
	case snap.Error != "":
		b.WriteString("  " + styles.ErrorStyle.Render("✗ "+snap.Error) + "\n")
		b.WriteString(styles.HelpStyle.Render("  Press enter to try again.") + "\n")
	case strings.TrimSpace(snap.Query) == "":
		b.WriteString(styles.MetadataStyle.Render("  Start typing to search MyAnimeList.") + "\n")
	case len(snap.Results) == 0 && a.debouncer.Pending():
		b.WriteString(styles.MetadataStyle.Render(fmt.Sprintf("  Waiting to search for %q...", snap.Query)) + "\n")
	case len(snap.Results) == 0:
		b.WriteString(styles.MetadataStyle.Render(fmt.Sprintf("  No results for %q.", snap.Query)) + "\n")
	}

	if !snap.Loading && snap.Error == "" && len(snap.Results) > 0 {
		b.WriteString(a.results.View())
	}

	help := "  type to search • enter search now • tab results • ctrl+f favorites • ? help"
	if a.results.Focused() {
		help = "  ↑/↓ nav • enter details • f favorite • n/p page • F filters • tab input • ? help"
	}
	b.WriteString(styles.HelpStyle.Render(help))
	return b.String()
}

// updateHelpContext updates the help component's context based on the current state
func (a *App) updateHelpContext() {
	switch {
	case a.overlay == filterOverlay:
		a.helpComponent.SetContext(help.FilterContext)
	case a.state == detailView:
		a.helpComponent.SetContext(help.DetailContext)
	case a.state == favoritesView:
		a.helpComponent.SetContext(help.FavoritesContext)
	case a.results.Focused():
		a.helpComponent.SetContext(help.ResultsContext)
	case a.state == searchView:
		a.helpComponent.SetContext(help.SearchContext)
	default:
		a.helpComponent.SetContext(help.GlobalContext)
	}
}
