package capability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GeneralBots/botlib/capability"
)

// The registry is process-global and registration cannot be undone, so the
// tests here only add capabilities and never assume one is absent after
// another test registered it.

func TestRegisterIdempotent(t *testing.T) {
	capability.Register(capability.Validation)
	capability.Register(capability.Validation)
	capability.Register(capability.Validation)

	assert.True(t, capability.Enabled(capability.Validation))

	count := 0
	for _, name := range capability.All() {
		if name == capability.Validation {
			count++
		}
	}
	assert.Equal(t, 1, count, "repeated registration should record the capability once")
}

func TestRegisterOrderIndependent(t *testing.T) {
	capability.Register(capability.HTTPClient)
	capability.Register(capability.Database)

	assert.True(t, capability.Enabled(capability.Database))
	assert.True(t, capability.Enabled(capability.HTTPClient))
}

func TestEnabledUnknownName(t *testing.T) {
	assert.False(t, capability.Enabled("telepathy"))
}

func TestFullRequiresEveryCapability(t *testing.T) {
	capability.Register(capability.Database)
	capability.Register(capability.HTTPClient)
	capability.Register(capability.Validation)

	assert.True(t, capability.Enabled(capability.Full))
}

func TestAllSorted(t *testing.T) {
	capability.Register(capability.Validation)
	capability.Register(capability.Database)

	all := capability.All()
	assert.IsIncreasing(t, all)
	assert.Contains(t, all, capability.Database)
	assert.Contains(t, all, capability.Validation)
}
