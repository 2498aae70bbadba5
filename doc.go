// Package botlib is the shared foundation library for the General Bots
// workspace. It provides the cross-cutting pieces every consumer (botserver,
// botui, the desktop app) needs to agree on: the unified error taxonomy
// (boterr), the shared data models (models), and thin wrappers around the
// optional integrations a consumer may or may not compile in.
//
// # Capabilities
//
// Optional integrations are plain Go packages. Importing one pulls in its
// dependency and its error type; not importing it keeps both out of the
// build entirely. Each integration registers itself with the capability
// package so a binary can introspect what it was compiled with:
//
//	import (
//	    _ "github.com/GeneralBots/botlib/httpx" // http-client capability
//	)
//
//	capability.Enabled(capability.HTTPClient) // true
//
// The full package enables every integration at once:
//
//	import _ "github.com/GeneralBots/botlib/full"
//
// A consumer that imports none of them gets only the fixed error taxonomy,
// the model registry and the ambient packages (config, logger, branding,
// version, limits, retry) with no optional third-party dependency.
//
// # Pinned supporting libraries
//
// This package re-exports the identifier and serialization types every
// consumer shares (see reexport.go), so the whole workspace resolves to the
// single version pinned in this module's go.mod instead of each application
// declaring its own.
package botlib
