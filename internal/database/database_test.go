package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/justchokingaround/anisearch/internal/config"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(&config.DatabaseConfig{
		Path:           filepath.Join(t.TempDir(), "nested", "test.db"),
		WALMode:        true,
		MaxConnections: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)

	_, found, err := GetSetting(db, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, PutSetting(db, "k", "v1"))
	value, found, err := GetSetting(db, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v1", value)

	require.NoError(t, PutSetting(db, "k", "v2"))
	value, _, err = GetSetting(db, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)

	var count int64
	require.NoError(t, db.Model(&Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "upsert must not duplicate rows")

	require.NoError(t, DeleteSetting(db, "k"))
	require.NoError(t, DeleteSetting(db, "k"))
	_, found, err = GetSetting(db, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInitAndClose(t *testing.T) {
	err := Init(&config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "app.db")})
	require.NoError(t, err)
	require.NotNil(t, DB)

	require.NoError(t, Close())
	assert.Nil(t, DB)
	assert.NoError(t, Close(), "closing twice is harmless")
}
