package storage

import (
	"github.com/lokeshrana9999/calor-ease-client/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists each blob as one row in the storage_entries table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Get(key string) (string, bool) {
	var entry models.StorageEntry
	err := g.db.Where("key = ?", key).First(&entry).Error
	if err != nil {
		return "", false
	}
	return entry.Value, true
}

func (g *GormStore) Set(key, value string) error {
	entry := models.StorageEntry{Key: key, Value: value}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (g *GormStore) Remove(key string) error {
	return g.db.Where("key = ?", key).Delete(&models.StorageEntry{}).Error
}
