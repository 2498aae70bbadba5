// Package models defines the shared data entities exchanged between
// botserver, botui and the desktop app. The types here carry no behavior
// beyond construction and serialization; botlib keeps no registry of live
// instances.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the generic identified, named and timestamped record shared
// across the workspace. The identifier is immutable after creation and the
// creation timestamp is set exactly once, by NewEntity.
type Entity struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntity creates an Entity with a fresh identifier and the current UTC
// time as its creation timestamp.
func NewEntity(name string) Entity {
	return Entity{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Equal reports whether two entities are the same record with the same
// name and creation instant. Timestamps are compared as instants, so an
// entity survives a JSON round-trip equal to itself.
func (e Entity) Equal(other Entity) bool {
	return e.ID == other.ID &&
		e.Name == other.Name &&
		e.CreatedAt.Equal(other.CreatedAt)
}
