package favorites

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/justchokingaround/anisearch/internal/catalog"
	"github.com/justchokingaround/anisearch/internal/database"
)

const settingKey = "animeFavorites"

// Store persists the favorites list
type Store interface {
	Load() ([]catalog.Anime, error)
	Save(items []catalog.Anime) error
}

// SettingsStore keeps favorites as one JSON row in the settings table
type SettingsStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewSettingsStore creates a store backed by db
func NewSettingsStore(db *gorm.DB, logger *slog.Logger) *SettingsStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsStore{db: db, logger: logger}
}

// Load returns the saved favorites. A missing or unreadable row yields an
// empty list; only database failures are returned as errors.
func (s *SettingsStore) Load() ([]catalog.Anime, error) {
	value, found, err := database.GetSetting(s.db, settingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	if !found || value == "" {
		return []catalog.Anime{}, nil
	}

	var items []catalog.Anime
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		s.logger.Warn("discarding corrupt favorites", "error", err)
		return []catalog.Anime{}, nil
	}
	if items == nil {
		items = []catalog.Anime{}
	}
	return items, nil
}

// Save overwrites the stored list with items. An empty list removes the row.
func (s *SettingsStore) Save(items []catalog.Anime) error {
	if len(items) == 0 {
		if err := database.DeleteSetting(s.db, settingKey); err != nil {
			return fmt.Errorf("failed to clear favorites: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	if err := database.PutSetting(s.db, settingKey, string(data)); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu    sync.Mutex
	items []catalog.Anime
	saves int
	// Err, when set, is returned by Save
	Err error
}

// NewMemoryStore returns a store preloaded with items
func NewMemoryStore(items ...catalog.Anime) *MemoryStore {
	return &MemoryStore{items: append([]catalog.Anime(nil), items...)}
}

func (m *MemoryStore) Load() ([]catalog.Anime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]catalog.Anime{}, m.items...), nil
}

func (m *MemoryStore) Save(items []catalog.Anime) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.items = append([]catalog.Anime{}, items...)
	m.saves++
	return nil
}

// Saves counts successful Save calls
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
