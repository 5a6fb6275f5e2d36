// Package config provides configuration for the blogindex binary.
// Loads from: CLI flags > env vars > .blogindex/config.toml > built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/sgx-labs/blogindex/internal/posts"
)

// DirName is the per-project directory holding config.toml.
const DirName = ".blogindex"

// Config holds all blogindex configuration, loaded from TOML + env + flags.
type Config struct {
	Site    SiteConfig    `toml:"site"`
	Migrate MigrateConfig `toml:"migrate"`
	Display DisplayConfig `toml:"display"`
}

// SiteConfig describes where posts live and how dates are shown.
type SiteConfig struct {
	ContentDir string   `toml:"content_dir"`
	Locale     string   `toml:"locale"`
	SkipDirs   []string `toml:"skip_dirs"`
}

// MigrateConfig drives the legacy layout migration.
type MigrateConfig struct {
	LegacyDir  string `toml:"legacy_dir"`
	PagesDir   string `toml:"pages_dir"`
	LayoutFrom string `toml:"layout_from"`
	LayoutTo   string `toml:"layout_to"`
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	Mode string `toml:"mode"` // "full", "compact", "quiet"
}

// DefaultConfig returns a Config with all built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ContentDir: "src/pages",
			Locale:     posts.DefaultLocale,
		},
		Migrate: MigrateConfig{
			LegacyDir:  "src/pages/posts",
			PagesDir:   "src/pages",
			LayoutFrom: "../../layouts/",
			LayoutTo:   "../../../../layouts/",
		},
		Display: DisplayConfig{Mode: "full"},
	}
}

// ContentOverride is set by the --content global flag.
var ContentOverride string

// ConfigOverride is set by the --config global flag.
var ConfigOverride string

// warnOut receives unknown-key warnings.
var warnOut io.Writer = os.Stderr

// LoadConfig loads the config file found by FindConfigFile, then applies
// env and flag overrides.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(FindConfigFile())
}

// LoadConfigFrom loads the config at configPath. A missing file is not an
// error; defaults and env overrides still apply.
func LoadConfigFrom(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			meta, err := toml.DecodeFile(configPath, cfg)
			if err != nil {
				return nil, fmt.Errorf("parse config %s: %w", configPath, err)
			}
			warnUnknownKeys(meta, configPath)
		} else if configPath == ConfigOverride {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	}

	// Environment variables override TOML values
	if v := os.Getenv("BLOGINDEX_CONTENT_DIR"); v != "" {
		cfg.Site.ContentDir = v
	}
	if v := os.Getenv("BLOGINDEX_LOCALE"); v != "" {
		cfg.Site.Locale = v
	}
	if v := os.Getenv("BLOGINDEX_SKIP_DIRS"); v != "" {
		for _, d := range strings.Split(v, ",") {
			d = strings.TrimSpace(d)
			if d != "" {
				cfg.Site.SkipDirs = append(cfg.Site.SkipDirs, d)
			}
		}
	}
	if v := os.Getenv("BLOGINDEX_LEGACY_DIR"); v != "" {
		cfg.Migrate.LegacyDir = v
	}

	if ContentOverride != "" {
		cfg.Site.ContentDir = ContentOverride
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks required directories, the locale and the display mode.
func (c *Config) Validate() error {
	return errors.Join(
		validation.ValidateStruct(&c.Site,
			validation.Field(&c.Site.ContentDir, validation.Required),
			validation.Field(&c.Site.Locale, validation.Required, validation.By(knownLocale)),
		),
		validation.ValidateStruct(&c.Migrate,
			validation.Field(&c.Migrate.LegacyDir, validation.Required),
			validation.Field(&c.Migrate.PagesDir, validation.Required),
		),
		validation.ValidateStruct(&c.Display,
			validation.Field(&c.Display.Mode, validation.In("full", "compact", "quiet")),
		),
	)
}

func knownLocale(value interface{}) error {
	s, _ := value.(string)
	if s != "" && !posts.KnownLocale(s) {
		return fmt.Errorf("unsupported locale %q", s)
	}
	return nil
}

// FindConfigFile returns the --config path if set, otherwise
// .blogindex/config.toml in the current directory, or "".
func FindConfigFile() string {
	if ConfigOverride != "" {
		return ConfigOverride
	}
	if cwd, err := os.Getwd(); err == nil {
		p := ConfigFilePath(cwd)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ConfigFilePath returns the config file location for a project root.
func ConfigFilePath(root string) string {
	return filepath.Join(root, DirName, "config.toml")
}

// GenerateConfig writes a commented default config under root. It refuses
// to overwrite an existing file.
func GenerateConfig(root string) (string, error) {
	configPath := ConfigFilePath(root)
	if _, err := os.Stat(configPath); err == nil {
		return configPath, fmt.Errorf("config already exists: %s", configPath)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(generateTOMLContent()), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return configPath, nil
}

func generateTOMLContent() string {
	d := DefaultConfig()
	var b strings.Builder
	b.WriteString("# blogindex configuration\n")
	b.WriteString("#\n")
	b.WriteString("# Priority: CLI flags > environment variables > this file > built-in defaults\n")
	b.WriteString("# Environment variables: BLOGINDEX_CONTENT_DIR, BLOGINDEX_LOCALE,\n")
	b.WriteString("#   BLOGINDEX_SKIP_DIRS, BLOGINDEX_LEGACY_DIR\n\n")

	b.WriteString("[site]\n")
	fmt.Fprintf(&b, "content_dir = %q\n", d.Site.ContentDir)
	b.WriteString("# zh-CN, ja-JP, en-US, de-DE, fr-FR\n")
	fmt.Fprintf(&b, "locale = %q\n", d.Site.Locale)
	b.WriteString("# skip_dirs = [\"archive\", \"wip\"]  # added to built-in exclusions\n\n")

	b.WriteString("[migrate]\n")
	fmt.Fprintf(&b, "legacy_dir = %q\n", d.Migrate.LegacyDir)
	fmt.Fprintf(&b, "pages_dir = %q\n", d.Migrate.PagesDir)
	fmt.Fprintf(&b, "layout_from = %q\n", d.Migrate.LayoutFrom)
	fmt.Fprintf(&b, "layout_to = %q\n\n", d.Migrate.LayoutTo)

	b.WriteString("[display]\n")
	b.WriteString("# full, compact, quiet\n")
	fmt.Fprintf(&b, "mode = %q\n", d.Display.Mode)
	return b.String()
}

// ShowConfig returns cfg as TOML.
func ShowConfig(cfg *Config) (string, error) {
	var b strings.Builder
	b.WriteString("# Effective blogindex configuration (merged from all sources)\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}

// configSuggestions maps common mistakes to the key that was probably meant.
var configSuggestions = map[string]string{
	"content":    "content_dir",
	"contentDir": "content_dir",
	"dir":        "content_dir",
	"lang":       "locale",
	"language":   "locale",
	"skip":       "skip_dirs",
	"skipDirs":   "skip_dirs",
	"legacy":     "legacy_dir",
	"legacyDir":  "legacy_dir",
	"pages":      "pages_dir",
	"pagesDir":   "pages_dir",
	"layout":     "layout_from",
	"display":    "mode",
}

func warnUnknownKeys(meta toml.MetaData, configPath string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}

	fname := filepath.Base(configPath)
	for _, key := range undecoded {
		keyStr := key.String()
		lastPart := key[len(key)-1]

		if suggestion, ok := configSuggestions[lastPart]; ok {
			fmt.Fprintf(warnOut, "blogindex: WARNING: unknown key %q in %s, did you mean %q?\n",
				keyStr, fname, suggestion)
		} else {
			fmt.Fprintf(warnOut, "blogindex: WARNING: unknown key %q in %s (will be ignored)\n",
				keyStr, fname)
		}
	}
}
