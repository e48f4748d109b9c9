package database

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Setting represents a key-value store for application state
type Setting struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName overrides the table name
func (Setting) TableName() string {
	return "settings"
}

// Migrate runs GORM AutoMigrate for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Setting{},
	)
}

// GetSetting returns the value stored under key.
// found is false when no row exists (not an error).
func GetSetting(db *gorm.DB, key string) (value string, found bool, err error) {
	var s Setting
	err = db.Where("key = ?", key).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return s.Value, true, nil
}

// PutSetting upserts key with value
func PutSetting(db *gorm.DB, key, value string) error {
	return db.Exec(`
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now()).Error
}

// DeleteSetting removes key; deleting a missing key is not an error
func DeleteSetting(db *gorm.DB, key string) error {
	return db.Where("key = ?", key).Delete(&Setting{}).Error
}
