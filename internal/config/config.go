package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	appName = "anisearch"

	// DefaultBaseURL is the public Jikan v4 endpoint
	DefaultBaseURL = "https://api.jikan.moe/v4"

	// PageSize is the number of results requested per search page
	PageSize = 24
)

// Config is the root application configuration
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Search   SearchConfig   `mapstructure:"search"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	UI       UIConfig       `mapstructure:"ui"`
	Advanced AdvancedConfig `mapstructure:"advanced"`
}

// APIConfig holds settings for the remote catalog
type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// SearchConfig holds search behaviour settings
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// DatabaseConfig holds the sqlite settings
type DatabaseConfig struct {
	Path           string `mapstructure:"path"`
	WALMode        bool   `mapstructure:"wal_mode"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Color      bool   `mapstructure:"color"`
}

// UIConfig holds TUI settings
type UIConfig struct {
	MaxVisiblePages int `mapstructure:"max_visible_pages"`
}

// AdvancedConfig holds rarely changed settings
type AdvancedConfig struct {
	Debug     bool            `mapstructure:"debug"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
}

// ClipboardConfig allows overriding the clipboard command
type ClipboardConfig struct {
	Command string `mapstructure:"command"`
}

type setting struct {
	key   string
	value interface{}
}

// defaults is ordered so the generated config file stays stable
func defaults() []setting {
	return []setting{
		{"api.base_url", DefaultBaseURL},
		{"api.timeout", "10s"},
		{"api.max_retries", 2},
		{"api.requests_per_second", 3.0},
		{"api.burst", 3},
		{"search.debounce", "250ms"},
		{"database.path", filepath.Join(GetDataDir(), appName+".db")},
		{"database.wal_mode", true},
		{"database.max_connections", 4},
		{"logging.level", "info"},
		{"logging.format", "text"},
		{"logging.file", ""},
		{"logging.max_size", 10},
		{"logging.max_backups", 3},
		{"logging.max_age", 28},
		{"logging.compress", false},
		{"logging.color", true},
		{"ui.max_visible_pages", 5},
		{"advanced.debug", false},
		{"advanced.clipboard.command", ""},
	}
}

// Load reads configuration from cfgFile (or the default location), applying
// defaults and ANISEARCH_* environment overrides. The returned viper instance
// can be used to watch the file for changes.
func Load(cfgFile string) (*Config, *viper.Viper, error) {
	v := viper.New()
	for _, s := range defaults() {
		v.SetDefault(s.key, s.value)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(GetConfigDir())
	}

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// Reload decodes the current state of v into a fresh Config
func Reload(v *viper.Viper) (*Config, error) {
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later in surprising ways
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative, got %s", c.Search.Debounce)
	}
	if c.UI.MaxVisiblePages < 1 {
		c.UI.MaxVisiblePages = 5
	}
	if c.Database.MaxConnections < 1 {
		c.Database.MaxConnections = 1
	}
	return nil
}

// SaveDefaultConfig writes the default configuration as YAML to path
func SaveDefaultConfig(path string) error {
	root := make(map[string]interface{})
	for _, s := range defaults() {
		parts := strings.Split(s.key, ".")
		node := root
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = s.value
	}

	data, err := yaml.Marshal(root)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	header := "# anisearch configuration\n# Every key can be overridden with ANISEARCH_<SECTION>_<KEY>\n\n"
	return os.WriteFile(path, append([]byte(header), data...), 0644)
}

// GetConfigDir returns the directory holding config.yaml
func GetConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(".", "."+appName)
}

// GetDataDir returns the directory holding the database
func GetDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", appName)
	}
	return filepath.Join(".", "."+appName)
}

func getStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state")
	}
	return "."
}

// InitializeDirs creates the config and data directories
func InitializeDirs() error {
	for _, dir := range []string{GetConfigDir(), GetDataDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
