package models

import "time"

// StorageEntry is one persisted key-value blob. The history and meal-plan
// services each write one whole JSON array per key.
type StorageEntry struct {
	Key       string `gorm:"primaryKey;type:varchar(255)"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
	CreatedAt time.Time
}
