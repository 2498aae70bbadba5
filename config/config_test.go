package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeneralBots/botlib/boterr"
	"github.com/GeneralBots/botlib/config"
)

func TestGetenv(t *testing.T) {
	t.Setenv("BOTLIB_TEST_STR", "value")
	assert.Equal(t, "value", config.Getenv("BOTLIB_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", config.Getenv("BOTLIB_TEST_UNSET", "fallback"))

	t.Setenv("BOTLIB_TEST_EMPTY", "")
	assert.Equal(t, "fallback", config.Getenv("BOTLIB_TEST_EMPTY", "fallback"))
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("BOTLIB_TEST_INT", "42")
	assert.Equal(t, 42, config.GetenvInt("BOTLIB_TEST_INT", 7))

	t.Setenv("BOTLIB_TEST_INT", "not a number")
	assert.Equal(t, 7, config.GetenvInt("BOTLIB_TEST_INT", 7))

	assert.Equal(t, 7, config.GetenvInt("BOTLIB_TEST_INT_UNSET", 7))
}

func TestGetenvBool(t *testing.T) {
	tests := []struct {
		value    string
		def      bool
		expected bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"false", true, false},
		{"0", true, false},
		{"yes", false, false}, // not parseable, falls back
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("BOTLIB_TEST_BOOL", tt.value)
			assert.Equal(t, tt.expected, config.GetenvBool("BOTLIB_TEST_BOOL", tt.def))
		})
	}
}

func TestGetenvDuration(t *testing.T) {
	t.Setenv("BOTLIB_TEST_DUR", "1m30s")
	assert.Equal(t, 90*time.Second, config.GetenvDuration("BOTLIB_TEST_DUR", time.Second))

	t.Setenv("BOTLIB_TEST_DUR", "ninety")
	assert.Equal(t, time.Second, config.GetenvDuration("BOTLIB_TEST_DUR", time.Second))
}

func TestRequireEnv(t *testing.T) {
	t.Setenv("BOTLIB_TEST_REQ", "present")
	v, err := config.RequireEnv("BOTLIB_TEST_REQ")
	require.NoError(t, err)
	assert.Equal(t, "present", v)

	_, err = config.RequireEnv("BOTLIB_TEST_REQ_MISSING")
	require.Error(t, err)
	assert.True(t, errors.Is(err, boterr.ErrConfig))
	assert.Contains(t, err.Error(), "BOTLIB_TEST_REQ_MISSING")
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BOTLIB_TEST_DOTENV=from_file\n"), 0o644))

	require.NoError(t, config.LoadEnvFile(envFile))
	assert.Equal(t, "from_file", os.Getenv("BOTLIB_TEST_DOTENV"))
	t.Cleanup(func() { os.Unsetenv("BOTLIB_TEST_DOTENV") })

	err := config.LoadEnvFile(filepath.Join(dir, "missing.env"))
	require.Error(t, err)
	assert.True(t, boterr.IsConfig(err))
}

func TestValidate(t *testing.T) {
	type serverConfig struct {
		Env  string `validate:"required,oneof=dev prod"`
		Addr string `validate:"required"`
		Port int    `validate:"gte=1,lte=65535"`
	}

	tests := []struct {
		name    string
		cfg     serverConfig
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  serverConfig{Env: "dev", Addr: ":8080", Port: 8080},
		},
		{
			name:    "missing addr",
			cfg:     serverConfig{Env: "prod", Port: 80},
			wantErr: true,
		},
		{
			name:    "bad env",
			cfg:     serverConfig{Env: "staging", Addr: ":80", Port: 80},
			wantErr: true,
		},
		{
			name:    "port out of range",
			cfg:     serverConfig{Env: "dev", Addr: ":80", Port: 70000},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.Validate(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, boterr.IsConfig(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
