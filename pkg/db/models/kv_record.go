package models

import "time"

// KVRecord holds one namespaced collection blob. Every collection the portal
// persists (users, brands, products, orders) is a single JSON document under
// its key.
type KVRecord struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the goose-managed table name.
func (KVRecord) TableName() string {
	return "kv_records"
}
