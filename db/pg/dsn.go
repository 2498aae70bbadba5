package pg

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/GeneralBots/botlib/boterr"
)

// DSNConfig holds the parts of a PostgreSQL connection string.
type DSNConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// ApplicationName shows up in pg_stat_activity and server logs.
	ApplicationName string
	// ConnectTimeout is in seconds, per the libpq convention.
	ConnectTimeout int

	// ExtraParams are appended verbatim to the query string.
	ExtraParams map[string]string
}

// BuildDSN renders the configuration as a postgres:// URL. Empty host,
// port and sslmode fall back to localhost:5432 with sslmode=disable.
func BuildDSN(cfg DSNConfig) string {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 5432
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}

	var dsn strings.Builder
	dsn.WriteString("postgres://")
	if cfg.User != "" {
		dsn.WriteString(url.QueryEscape(cfg.User))
		if cfg.Password != "" {
			dsn.WriteString(":")
			dsn.WriteString(url.QueryEscape(cfg.Password))
		}
		dsn.WriteString("@")
	}
	dsn.WriteString(cfg.Host)
	dsn.WriteString(":")
	dsn.WriteString(strconv.Itoa(cfg.Port))
	if cfg.Database != "" {
		dsn.WriteString("/")
		dsn.WriteString(url.QueryEscape(cfg.Database))
	}

	params := url.Values{}
	params.Set("sslmode", cfg.SSLMode)
	if cfg.ApplicationName != "" {
		params.Set("application_name", cfg.ApplicationName)
	}
	if cfg.ConnectTimeout > 0 {
		params.Set("connect_timeout", strconv.Itoa(cfg.ConnectTimeout))
	}
	for k, v := range cfg.ExtraParams {
		if k != "" && v != "" {
			params.Set(k, v)
		}
	}
	dsn.WriteString("?")
	dsn.WriteString(params.Encode())
	return dsn.String()
}

// ParseDSN splits a postgres:// URL back into a DSNConfig.
func ParseDSN(dsn string) (DSNConfig, error) {
	cfg := DSNConfig{ExtraParams: make(map[string]string)}

	u, err := url.Parse(dsn)
	if err != nil {
		return cfg, boterr.MarkKind(err, boterr.KindConfig)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return cfg, boterr.Configf("unsupported scheme: %s", u.Scheme)
	}

	cfg.Host = u.Hostname()
	cfg.Port = 5432
	if u.Port() != "" {
		cfg.Port, err = strconv.Atoi(u.Port())
		if err != nil {
			return cfg, boterr.Configf("invalid port: %s", u.Port())
		}
	}
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Password, _ = u.User.Password()
	}
	if u.Path != "" && u.Path != "/" {
		cfg.Database = strings.TrimPrefix(u.Path, "/")
	}

	query := u.Query()
	cfg.SSLMode = query.Get("sslmode")
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	cfg.ApplicationName = query.Get("application_name")
	if v := query.Get("connect_timeout"); v != "" {
		cfg.ConnectTimeout, _ = strconv.Atoi(v)
	}
	for key, values := range query {
		switch key {
		case "sslmode", "application_name", "connect_timeout":
		default:
			if len(values) > 0 {
				cfg.ExtraParams[key] = values[0]
			}
		}
	}
	return cfg, nil
}

var validSSLModes = map[string]bool{
	"disable":     true,
	"allow":       true,
	"prefer":      true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// Validate checks that the configuration can produce a usable DSN.
func (cfg DSNConfig) Validate() error {
	if cfg.User == "" {
		return boterr.Config("user is required")
	}
	if cfg.Database == "" {
		return boterr.Config("database is required")
	}
	if cfg.Host == "" {
		return boterr.Config("host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return boterr.Configf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.SSLMode != "" && !validSSLModes[cfg.SSLMode] {
		return boterr.Configf("invalid sslmode: %s", cfg.SSLMode)
	}
	if cfg.ConnectTimeout < 0 {
		return boterr.Config("connect_timeout cannot be negative")
	}
	return nil
}
