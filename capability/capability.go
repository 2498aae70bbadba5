// Package capability is the build-time feature registry of botlib.
//
// A capability is compiled into a binary by importing its package; the
// import pulls the integration's dependency and its error type, and nothing
// else can. This package only records which capabilities made it into the
// build, the way database/sql records registered drivers: each integration
// package calls Register from its init function, usually reached through a
// blank import:
//
//	import _ "github.com/GeneralBots/botlib/httpx"
//
// There is no way to enable a capability at runtime and nothing to disable.
// Enabling is monotonic and idempotent: registering the same capability
// twice, or in any order with others, yields the same compiled set.
package capability

import (
	"slices"
	"sync"
)

// Capability names. These match the feature names used across the General
// Bots workspace build scripts.
const (
	// Database gates the db/pg and db/sqlite wrappers and their drivers.
	Database = "database"
	// HTTPClient gates the httpx wrapper.
	HTTPClient = "http-client"
	// Validation gates the validate wrapper.
	Validation = "validation"
	// Full is the aggregate of all of the above, enabled by importing the
	// full package.
	Full = "full"
)

var (
	mu      sync.RWMutex
	enabled = make(map[string]struct{})
)

// Register records that a capability is compiled into this binary.
// Registering an already-registered capability is a no-op. Integration
// packages call this from init; consumers normally never do.
func Register(name string) {
	mu.Lock()
	defer mu.Unlock()
	enabled[name] = struct{}{}
}

// Enabled reports whether the named capability was compiled in. Full is
// reported enabled once every individual capability is present.
func Enabled(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	if name == Full {
		for _, c := range []string{Database, HTTPClient, Validation} {
			if _, ok := enabled[c]; !ok {
				return false
			}
		}
		return true
	}
	_, ok := enabled[name]
	return ok
}

// All returns the sorted list of compiled-in capabilities.
func All() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(enabled))
	for name := range enabled {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
