package schema

import "time"

// KeyValueStore holds small pieces of service state.
// Derivative link fingerprints are stored here, keyed "ledger_link:<fingerprint>".
type KeyValueStore struct {
	Key       string    `gorm:"column:key;primaryKey;type:text"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (KeyValueStore) TableName() string {
	return "key_value_store"
}
