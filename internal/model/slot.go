package model

import "time"

// Slot is a single key/value cell. Each collection is stored serialized in
// one slot and rewritten in full on every change.
type Slot struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}
