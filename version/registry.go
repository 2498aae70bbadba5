// Package version tracks the versions and statuses of the components that
// make up a General Bots deployment (botserver, the BASIC interpreter, the
// LLM integration, external services). The registry is a value owned by
// the consumer; botlib keeps no process-wide instance.
package version

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	botlib "github.com/GeneralBots/botlib"
)

// Status describes the runtime state of a component.
type Status string

const (
	StatusRunning      Status = "running"
	StatusStopped      Status = "stopped"
	StatusError        Status = "error"
	StatusUpdating     Status = "updating"
	StatusNotInstalled Status = "not_installed"
	StatusUnknown      Status = "unknown"
)

// String returns the human-readable form shown in status listings.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "[OK] Running"
	case StatusStopped:
		return "[STOP] Stopped"
	case StatusError:
		return "[ERR] Error"
	case StatusUpdating:
		return "[UPD] Updating"
	case StatusNotInstalled:
		return "[--] Not Installed"
	default:
		return "[?] Unknown"
	}
}

// Source describes how a component is deployed.
type Source string

const (
	SourceBuiltin  Source = "builtin"
	SourceDocker   Source = "docker"
	SourceSystem   Source = "system"
	SourceBinary   Source = "binary"
	SourceExternal Source = "external"
)

// Component is one tracked component of a deployment.
type Component struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	LatestVersion   string            `json:"latest_version,omitempty"`
	UpdateAvailable bool              `json:"update_available"`
	Status          Status            `json:"status"`
	Source          Source            `json:"source"`
	LastChecked     *time.Time        `json:"last_checked,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// Registry holds the known components of one deployment. Safe for
// concurrent use.
type Registry struct {
	mu          sync.RWMutex
	coreVersion string
	components  map[string]Component
}

// NewRegistry creates a registry pre-populated with the builtin
// components of a standard deployment.
func NewRegistry() *Registry {
	r := &Registry{
		coreVersion: botlib.Version,
		components:  make(map[string]Component),
	}
	now := time.Now().UTC()
	for name, description := range map[string]string{
		"botserver": "core bot server",
		"basic":     "BASIC script interpreter",
		"llm":       "LLM integration",
	} {
		r.Register(Component{
			Name:        name,
			Version:     botlib.Version,
			Status:      StatusRunning,
			Source:      SourceBuiltin,
			LastChecked: &now,
			Metadata:    map[string]string{"description": description},
		})
	}
	return r
}

// CoreVersion returns the botlib version the registry was built with.
func (r *Registry) CoreVersion() string {
	return r.coreVersion
}

// Register adds or replaces a component.
func (r *Registry) Register(c Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[c.Name] = c
}

// SetStatus updates the status of a named component. Unknown names are
// ignored.
func (r *Registry) SetStatus(name string, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.components[name]; ok {
		c.Status = status
		r.components[name] = c
	}
}

// SetVersion updates the version of a named component and stamps the
// check time.
func (r *Registry) SetVersion(name, version string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.components[name]; ok {
		now := time.Now().UTC()
		c.Version = version
		c.LastChecked = &now
		r.components[name] = c
	}
}

// Component returns the named component.
func (r *Registry) Component(name string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// Components returns a snapshot of all components.
func (r *Registry) Components() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Component, 0, len(r.components))
	for _, c := range r.components {
		out = append(out, c)
	}
	return out
}

// AvailableUpdates returns components with a pending update.
func (r *Registry) AvailableUpdates() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Component
	for _, c := range r.components {
		if c.UpdateAvailable {
			out = append(out, c)
		}
	}
	return out
}

// Summary returns a one-line deployment status, e.g.
// "botlib v6.0.0 | 3/3 components running | 0 updates available".
func (r *Registry) Summary() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	running, updates := 0, 0
	for _, c := range r.components {
		if c.Status == StatusRunning {
			running++
		}
		if c.UpdateAvailable {
			updates++
		}
	}
	return fmt.Sprintf("%s v%s | %d/%d components running | %d updates available",
		botlib.Name, r.coreVersion, running, len(r.components), updates)
}

// MarshalJSON serializes the registry as its component snapshot.
func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CoreVersion string      `json:"core_version"`
		Components  []Component `json:"components"`
	}{
		CoreVersion: r.coreVersion,
		Components:  r.Components(),
	})
}
