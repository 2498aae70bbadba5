package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeneralBots/botlib/logger"
)

func TestNewConsoleOnly(t *testing.T) {
	l := logger.New(logger.Options{
		Env:          "dev",
		ConsoleLevel: "info",
		App:          "botserver",
	})
	require.NotNil(t, l)

	// no file handler, Close should be a no-op
	assert.NoError(t, logger.Close(l))
}

func TestNewWithFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "bot.log")

	l := logger.New(logger.Options{
		Env:          "prod",
		ConsoleLevel: "error",
		FileLevel:    "debug",
		File:         logFile,
		App:          "botserver",
	})
	require.NotNil(t, l)

	l.Info("startup complete", slog.String("component", "api"))
	require.NoError(t, logger.Close(l))

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &record))
	assert.Equal(t, "startup complete", record["msg"])
	assert.Equal(t, "botserver", record["app"])
	assert.Equal(t, "api", record["component"])
}

func TestRedactingHandler(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	h := logger.NewRedactingHandler(inner, []string{"token", "api_key"})
	l := slog.New(h)

	l.Info("calling botserver",
		slog.String("token", "super-secret"),
		slog.String("API_KEY", "also-secret"),
		slog.String("url", "https://api.example.com"),
	)

	out := buf.String()
	assert.NotContains(t, out, "super-secret")
	assert.NotContains(t, out, "also-secret")
	assert.Contains(t, out, "[REDACTED]")
	assert.Contains(t, out, "https://api.example.com")
}

func TestRedactingHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	h := logger.NewRedactingHandler(inner, []string{"password"})

	l := slog.New(h).With(slog.String("password", "hunter2"))
	l.Info("user login")

	assert.NotContains(t, buf.String(), "hunter2")
	assert.Contains(t, buf.String(), "[REDACTED]")
}

func TestMultiHandler(t *testing.T) {
	var first, second bytes.Buffer
	h := logger.NewMultiHandler(
		slog.NewJSONHandler(&first, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&second, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	l := slog.New(h)

	l.Debug("debug detail")
	l.Warn("something off")

	assert.Contains(t, first.String(), "debug detail")
	assert.Contains(t, first.String(), "something off")
	assert.NotContains(t, second.String(), "debug detail")
	assert.Contains(t, second.String(), "something off")
}

func TestParseLevelDefaults(t *testing.T) {
	// unknown level strings fall back: console to info, file to debug
	dir := t.TempDir()
	l := logger.New(logger.Options{
		Env:          "prod",
		ConsoleLevel: "chatty",
		FileLevel:    "verbose",
		File:         filepath.Join(dir, "bot.log"),
		App:          "botui",
	})
	require.NotNil(t, l)
	assert.NoError(t, logger.Close(l))
}
