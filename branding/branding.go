// Package branding resolves the product identity shown by every General
// Bots application: platform name, colors, support links. White-label
// deployments override the defaults through a .product file or
// PLATFORM_* environment variables.
package branding

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/GeneralBots/botlib/boterr"
)

// Default identity when no white-label configuration is present.
const (
	DefaultName      = "General Bots"
	DefaultShortName = "GB"
	DefaultDomain    = "generalbots.com"
)

// searchPaths are tried in order by Load before falling back to the
// PRODUCT_FILE variable and then the environment.
var searchPaths = []string{
	".product",
	"config/.product",
	"/etc/botserver/.product",
	"/opt/gbo/.product",
}

// Config describes a product identity.
type Config struct {
	Name           string `toml:"name" json:"name"`
	ShortName      string `toml:"short_name" json:"short_name"`
	Company        string `toml:"company" json:"company,omitempty"`
	Domain         string `toml:"domain" json:"domain,omitempty"`
	SupportEmail   string `toml:"support_email" json:"support_email,omitempty"`
	LogoURL        string `toml:"logo_url" json:"logo_url,omitempty"`
	FaviconURL     string `toml:"favicon_url" json:"favicon_url,omitempty"`
	PrimaryColor   string `toml:"primary_color" json:"primary_color,omitempty"`
	SecondaryColor string `toml:"secondary_color" json:"secondary_color,omitempty"`
	FooterText     string `toml:"footer_text" json:"footer_text,omitempty"`
	Copyright      string `toml:"copyright" json:"copyright,omitempty"`
	TermsURL       string `toml:"terms_url" json:"terms_url,omitempty"`
	PrivacyURL     string `toml:"privacy_url" json:"privacy_url,omitempty"`
	DocsURL        string `toml:"docs_url" json:"docs_url,omitempty"`
	IsWhiteLabel   bool   `toml:"-" json:"is_white_label"`
}

// Default returns the stock General Bots identity.
func Default() Config {
	return Config{
		Name:           DefaultName,
		ShortName:      DefaultShortName,
		Company:        "pragmatismo.com.br",
		Domain:         DefaultDomain,
		SupportEmail:   "support@generalbots.com",
		PrimaryColor:   "#25d366",
		SecondaryColor: "#075e54",
		DocsURL:        "https://docs.generalbots.com",
	}
}

// Load resolves the product identity. Resolution order: the first readable
// .product file from the standard search paths, then the file named by
// PRODUCT_FILE, then PLATFORM_* environment overrides on top of the
// defaults. Load never fails; a deployment without overrides gets the
// default identity.
func Load() Config {
	for _, path := range searchPaths {
		if cfg, err := LoadFile(path); err == nil {
			return cfg
		}
	}
	if path := os.Getenv("PRODUCT_FILE"); path != "" {
		if cfg, err := LoadFile(path); err == nil {
			return cfg
		}
	}

	cfg := Default()
	applyEnv(&cfg)
	return cfg
}

// LoadFile reads a .product file. The file may be TOML or a flat
// key=value list; both yield a white-label configuration.
func LoadFile(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, boterr.MarkKind(err, boterr.KindConfig)
	}

	cfg := Default()
	cfg.IsWhiteLabel = true

	if err := toml.Unmarshal(content, &cfg); err == nil && cfg.Name != "" {
		if cfg.ShortName == "" || cfg.ShortName == DefaultShortName {
			cfg.ShortName = deriveShortName(cfg.Name)
		}
		return cfg, nil
	}

	parseKeyValues(string(content), &cfg)
	return cfg, nil
}

// applyEnv overlays PLATFORM_* variables onto the configuration.
func applyEnv(cfg *Config) {
	set := func(key string, dst *string) bool {
		if v := os.Getenv(key); v != "" {
			*dst = v
			return true
		}
		return false
	}
	if set("PLATFORM_NAME", &cfg.Name) {
		cfg.IsWhiteLabel = true
	}
	set("PLATFORM_SHORT_NAME", &cfg.ShortName)
	set("PLATFORM_COMPANY", &cfg.Company)
	set("PLATFORM_DOMAIN", &cfg.Domain)
	set("PLATFORM_LOGO_URL", &cfg.LogoURL)
	set("PLATFORM_PRIMARY_COLOR", &cfg.PrimaryColor)
}

// parseKeyValues fills the configuration from "key = value" lines.
// Comments (#, ;) and unknown keys are skipped.
func parseKeyValues(content string, cfg *Config) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		switch key {
		case "name", "platform_name":
			cfg.Name = value
		case "short_name", "short":
			cfg.ShortName = value
		case "company", "organization":
			cfg.Company = value
		case "domain":
			cfg.Domain = value
		case "support_email", "email":
			cfg.SupportEmail = value
		case "logo_url", "logo":
			cfg.LogoURL = value
		case "favicon_url", "favicon":
			cfg.FaviconURL = value
		case "primary_color", "color":
			cfg.PrimaryColor = value
		case "secondary_color":
			cfg.SecondaryColor = value
		case "footer_text", "footer":
			cfg.FooterText = value
		case "copyright":
			cfg.Copyright = value
		case "terms_url", "terms":
			cfg.TermsURL = value
		case "privacy_url", "privacy":
			cfg.PrivacyURL = value
		case "docs_url", "docs":
			cfg.DocsURL = value
		}
	}
}

// deriveShortName builds an acronym from the product name: "Acme Bot
// Platform" becomes "ABP".
func deriveShortName(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		if len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	if b.Len() == 0 {
		return DefaultShortName
	}
	return strings.ToUpper(b.String())
}
