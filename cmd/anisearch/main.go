package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/justchokingaround/anisearch/internal/catalog"
	"github.com/justchokingaround/anisearch/internal/clipboard"
	"github.com/justchokingaround/anisearch/internal/config"
	"github.com/justchokingaround/anisearch/internal/database"
	"github.com/justchokingaround/anisearch/internal/favorites"
	"github.com/justchokingaround/anisearch/internal/search"
	"github.com/justchokingaround/anisearch/internal/tui"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Global flags
	cfgFile   string
	logLevel  string
	noColor   bool
	debugMode bool

	// Global config and logger
	cfg    *config.Config
	logger *slog.Logger

	// program is set while the TUI runs so config reloads can reach it
	program atomic.Pointer[tui.Program]
)

// commandTimeout bounds each one-shot CLI request
const commandTimeout = 30 * time.Second

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "anisearch [query]",
	Short: "Search MyAnimeList from the terminal and keep a list of favorites",
	Long: `anisearch is a terminal client for the Jikan API. Type to search anime,
filter and sort the results, read the details of a show and keep a local list
of favorites.

Run without a subcommand to open the interactive UI.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Args:    cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config init and path work without a loaded config
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" && cmd.Name() != "show" {
			return nil
		}
		switch cmd.Name() {
		case "version", "help", "completion", cobra.ShellCompRequestCmd:
			return nil
		}

		if err := config.InitializeDirs(); err != nil {
			return fmt.Errorf("failed to initialize directories: %w", err)
		}

		var err error
		var v *viper.Viper
		cfg, v, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if debugMode {
			cfg.Advanced.Debug = true
			if logLevel == "" {
				cfg.Logging.Level = "debug"
			}
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if noColor {
			cfg.Logging.Color = false
		}

		logger, err = config.InitLogger(&cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := database.Init(&cfg.Database); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		// Setup hot reload
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			logger.Info("config file changed", "name", e.Name)
			reloaded, err := config.Reload(v)
			if err != nil {
				logger.Error("failed to reload config", "error", err)
				return
			}
			if logLevel == "" && !debugMode {
				config.SetLogLevel(reloaded.Logging.Level)
			}
			if p := program.Load(); p != nil {
				p.ApplyConfig(reloaded)
			}
		})

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := database.Close(); err != nil && logger != nil {
			logger.Error("failed to close database", "error", err)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("anisearch starting", "version", version)

		store, err := newStore()
		if err != nil {
			return err
		}

		p := tui.NewProgram(tui.Options{
			Store:     store,
			Clipboard: clipboard.NewService(logger, cfg.Advanced.Clipboard.Command),
			Config:    cfg,
			Logger:    logger,
			Query:     strings.Join(args, " "),
		})
		program.Store(p)
		defer program.Store(nil)

		return p.Run()
	},
}

// newStore wires the catalog client and the persisted favorites into a store
func newStore() (*search.Store, error) {
	client := catalog.NewClient(cfg, logger)
	favStore := favorites.NewSettingsStore(database.DB, logger)
	store, err := search.NewStore(catalog.NewSearcher(client), favStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites: %w", err)
	}
	return store, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/anisearch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug mode (verbose HTTP logging)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(favoritesCmd)
}

// versionCmd displays version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("anisearch version %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
	},
}

// configCmd handles configuration operations
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(config.GetConfigDir(), "config.yaml")
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s", path)
		}

		if err := config.SaveDefaultConfig(path); err != nil {
			return fmt.Errorf("failed to save default configuration: %w", err)
		}

		fmt.Printf("Default configuration generated successfully at: %s\n", path)
		fmt.Printf("You can now edit this file to customize anisearch's settings.\n")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(map[string]interface{}{
			"api": map[string]interface{}{
				"base_url":            cfg.API.BaseURL,
				"timeout":             cfg.API.Timeout.String(),
				"max_retries":         cfg.API.MaxRetries,
				"requests_per_second": cfg.API.RequestsPerSecond,
				"burst":               cfg.API.Burst,
			},
			"search": map[string]interface{}{
				"debounce":  cfg.Search.Debounce.String(),
				"page_size": config.PageSize,
			},
			"database": map[string]interface{}{
				"path":            cfg.Database.Path,
				"wal_mode":        cfg.Database.WALMode,
				"max_connections": cfg.Database.MaxConnections,
			},
			"logging": map[string]interface{}{
				"level":  cfg.Logging.Level,
				"format": cfg.Logging.Format,
				"file":   cfg.Logging.File,
			},
			"ui": map[string]interface{}{
				"max_visible_pages": cfg.UI.MaxVisiblePages,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}

		fmt.Printf("# %s\n%s", configPath(), out)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Display configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(configPath())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

// searchCmd runs one search and prints the filtered, sorted page
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for anime",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		page, _ := cmd.Flags().GetInt("page")
		genres, _ := cmd.Flags().GetStringSlice("genre")
		year, _ := cmd.Flags().GetString("year")
		sortFlag, _ := cmd.Flags().GetString("sort")
		asJSON, _ := cmd.Flags().GetBool("json")

		mode, err := search.ParseSortMode(sortFlag)
		if err != nil {
			return err
		}
		if page < 1 {
			return &catalog.ValidationError{Field: "page", Value: strconv.Itoa(page), Msg: "must be at least 1"}
		}

		store, err := newStore()
		if err != nil {
			return err
		}
		store.SetGenres(genres)
		store.SetYear(year)
		store.SetSort(mode)

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		logger.Info("searching", "query", query, "page", page)
		if err := store.Search(ctx, query, page); err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		results := store.Displayed()
		if asJSON {
			return printJSON(results)
		}

		snap := store.Snapshot()
		fmt.Printf("Found %d results (page %d of %d", len(results), snap.CurrentPage, snap.TotalPages)
		if n := store.ActiveFilterCount(); n > 0 {
			fmt.Printf(", filters: %s, sort: %s", snap.Filters, snap.Sort.Label())
		}
		fmt.Print("):\n\n")

		for i, a := range results {
			marker := ""
			if store.IsFavorite(a.MalID) {
				marker = " ♥"
			}
			fmt.Printf("%d. %s%s\n", i+1, a.Title, marker)
			fmt.Printf("   ID: %d\n", a.MalID)
			printSummary(a)
			fmt.Println()
		}
		if snap.HasNextPage {
			fmt.Printf("More results: anisearch search %q --page %d\n", query, snap.CurrentPage+1)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("page", 1, "result page")
	searchCmd.Flags().StringSlice("genre", nil, "only show these genres (repeatable, any match)")
	searchCmd.Flags().String("year", "", "only show anime from this year")
	searchCmd.Flags().String("sort", "", "sort by popularity, rating or newest")
	searchCmd.Flags().Bool("json", false, "print results as JSON")
}

// infoCmd shows one anime
var infoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Show details for an anime",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		a, store, err := lookup(args[0])
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(a)
		}

		fmt.Println(a.Title)
		if en := a.EnglishTitle(); en != "" && en != a.Title {
			fmt.Println(en)
		}
		if store.IsFavorite(a.MalID) {
			fmt.Println("♥ In your favorites")
		}
		fmt.Println()
		printSummary(*a)

		if v := catalog.Deref(a.Members); v > 0 {
			fmt.Printf("   Members: %s\n", humanize.Comma(int64(v)))
		}
		if v := catalog.Deref(a.Rank); v > 0 {
			fmt.Printf("   Rank: #%s\n", humanize.Comma(int64(v)))
		}
		if v := catalog.Deref(a.Popularity); v > 0 {
			fmt.Printf("   Popularity: #%s\n", humanize.Comma(int64(v)))
		}
		if synopsis := catalog.Deref(a.Synopsis); synopsis != "" {
			fmt.Printf("\n%s\n", synopsis)
		}
		fmt.Printf("\n%s\n", a.URL)
		if trailer := a.TrailerURL(); trailer != "" {
			fmt.Printf("Trailer: %s\n", trailer)
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().Bool("json", false, "print the anime as JSON")
}

// lookup fetches one anime by its textual id
func lookup(rawID string) (*catalog.Anime, *search.Store, error) {
	store, err := newStore()
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := store.LoadDetail(ctx, rawID); err != nil {
		return nil, nil, fmt.Errorf("lookup failed: %w", err)
	}
	a := store.Snapshot().Selected
	if a == nil {
		return nil, nil, errors.New("lookup was canceled")
	}
	return a, store, nil
}

// favoritesCmd manages the saved list
var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorites",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		store, err := newStore()
		if err != nil {
			return err
		}
		items := store.Favorites()
		if asJSON {
			return printJSON(items)
		}

		if len(items) == 0 {
			fmt.Println("No favorites yet. Add one with: anisearch favorites add <id>")
			return nil
		}
		fmt.Printf("%d favorites:\n\n", len(items))
		for i, a := range items {
			fmt.Printf("%d. %s (ID: %d)\n", i+1, a.Title, a.MalID)
		}
		return nil
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add an anime to favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, store, err := lookup(args[0])
		if err != nil {
			return err
		}
		if store.IsFavorite(a.MalID) {
			fmt.Printf("%s is already a favorite\n", a.Title)
			return nil
		}
		if _, err := store.ToggleFavorite(*a); err != nil {
			return err
		}
		fmt.Printf("Added %s to favorites\n", a.Title)
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an anime from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := catalog.ParseID(args[0])
		if err != nil {
			return err
		}
		store, err := newStore()
		if err != nil {
			return err
		}

		for _, a := range store.Favorites() {
			if a.MalID != id {
				continue
			}
			if _, err := store.ToggleFavorite(a); err != nil {
				return err
			}
			fmt.Printf("Removed %s from favorites\n", a.Title)
			return nil
		}
		return fmt.Errorf("anime %d is not a favorite", id)
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Add or remove an anime",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, store, err := lookup(args[0])
		if err != nil {
			return err
		}
		added, err := store.ToggleFavorite(*a)
		if err != nil {
			return err
		}
		if added {
			fmt.Printf("Added %s to favorites\n", a.Title)
		} else {
			fmt.Printf("Removed %s from favorites\n", a.Title)
		}
		return nil
	},
}

func init() {
	favoritesListCmd.Flags().Bool("json", false, "print favorites as JSON")

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)
}

func printSummary(a catalog.Anime) {
	if a.Score != nil {
		line := fmt.Sprintf("   Score: %.2f", *a.Score)
		if v := catalog.Deref(a.ScoredBy); v > 0 {
			line += fmt.Sprintf(" (%s votes)", humanize.Comma(int64(v)))
		}
		fmt.Println(line)
	}
	if t := catalog.Deref(a.Type); t != "" {
		fmt.Printf("   Type: %s\n", t)
	}
	if y := a.YearString(); y != "" {
		fmt.Printf("   Year: %s\n", y)
	}
	if eps := catalog.Deref(a.Episodes); eps > 0 {
		fmt.Printf("   Episodes: %d\n", eps)
	}
	if a.Status != "" {
		fmt.Printf("   Status: %s\n", a.Status)
	}
	if genres := a.GenreNames(); len(genres) > 0 {
		fmt.Printf("   Genres: %s\n", strings.Join(genres, ", "))
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
