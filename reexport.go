package botlib

import (
	"encoding/json"

	"github.com/google/uuid"
)

// UUID is the workspace-wide unique identifier type. Consumers should use
// this alias instead of importing github.com/google/uuid directly so every
// application in the workspace resolves to the same pinned version.
type UUID = uuid.UUID

// NilUUID is the zero UUID.
var NilUUID = uuid.Nil

// NewUUID returns a new random (version 4) UUID.
func NewUUID() UUID {
	return uuid.New()
}

// ParseUUID parses a string-encoded UUID.
func ParseUUID(s string) (UUID, error) {
	return uuid.Parse(s)
}

// MustParseUUID parses a string-encoded UUID and panics on failure.
// Intended for constants and tests only.
func MustParseUUID(s string) UUID {
	return uuid.MustParse(s)
}

// RawJSON is a raw serialized JSON value, forwarded so consumers share one
// serialization vocabulary with the models package.
type RawJSON = json.RawMessage
