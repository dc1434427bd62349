// Package domain contains the core entities of the recipe service.
// These types carry no persistence or transport concerns.
package domain

import "time"

// Timestamps is embedded by entities that track creation and modification times.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitTimestamps sets both timestamps to now. Call when creating an entity.
func (t *Timestamps) InitTimestamps() {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
}

// Touch updates the modification timestamp.
func (t *Timestamps) Touch() {
	t.UpdatedAt = time.Now().UTC()
}
