package botlib

// Name is the library name reported by consumers.
const Name = "botlib"

// Version is the library version. All applications in one workspace build
// link the same botlib version, so this doubles as the workspace version.
const Version = "6.0.0"

// VersionString returns "botlib v6.0.0" style identification for logs and
// user agents.
func VersionString() string {
	return Name + " v" + Version
}
