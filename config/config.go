// Package config provides the environment-based configuration loading used
// across the General Bots workspace: .env support, typed getters and
// struct-tag validation. Every failure it returns carries
// boterr.ErrConfig, so callers classify configuration problems uniformly.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/GeneralBots/botlib/boterr"
)

var validate = validator.New()

// LoadEnv loads variables from an optional .env file into the process
// environment. A missing file is not an error; variables already set in
// the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// LoadEnvFile loads variables from the given dotenv files.
func LoadEnvFile(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return boterr.MarkKind(err, boterr.KindConfig)
	}
	return nil
}

// Getenv returns the value of the environment variable, or def when unset
// or empty.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetenvInt returns the integer value of the environment variable, or def
// when unset or not a valid integer.
func GetenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// GetenvBool returns the boolean value of the environment variable, or def
// when unset or not parseable.
func GetenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// GetenvDuration returns the duration value of the environment variable,
// or def when unset or not parseable.
func GetenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// RequireEnv returns the value of the environment variable or a
// configuration error naming the missing key.
func RequireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", boterr.Configf("%s is required", key)
	}
	return v, nil
}

// Validate checks a configuration struct against its validate tags:
//
//	type Config struct {
//	    Env  string `validate:"required,oneof=dev prod"`
//	    Addr string `validate:"required"`
//	}
//
// Violations are returned as a configuration error with the validator's
// native error preserved as the cause.
func Validate(cfg any) error {
	if err := validate.Struct(cfg); err != nil {
		return boterr.MarkKind(err, boterr.KindConfig)
	}
	return nil
}
