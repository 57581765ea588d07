package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/InfiniteCoder01/neohtml/internal/page"
)

type Config struct {
	Port string

	// Page sources
	Extension        string
	StrictAttributes bool

	// Build
	Workers   int
	SiteIndex bool

	// Page shell
	Stylesheet   string
	HighlightCSS string
	HighlightJS  string
}

func Load() Config {
	cfg := Config{
		Port: envOr("NEOHTML_PORT", "8090"),

		Extension:        envOr("NEOHTML_EXTENSION", ".neo"),
		StrictAttributes: envBool("NEOHTML_STRICT_ATTRIBUTES", false),

		Workers:   envInt("NEOHTML_WORKERS", 4),
		SiteIndex: envBool("NEOHTML_SITE_INDEX", true),

		Stylesheet:   envOr("NEOHTML_STYLESHEET", "global.css"),
		HighlightCSS: envOr("NEOHTML_HIGHLIGHT_CSS", "https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.8.0/styles/monokai.min.css"),
		HighlightJS:  envOr("NEOHTML_HIGHLIGHT_JS", "https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.8.0/highlight.min.js"),
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	return cfg
}

func (c Config) Validate() error {
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("NEOHTML_EXTENSION must start with a dot, got %q", c.Extension)
	}
	if c.Extension == ".html" {
		return fmt.Errorf("NEOHTML_EXTENSION cannot be .html, outputs would overwrite sources")
	}
	return nil
}

// Page maps the service configuration onto the parser/emitter configuration.
func (c Config) Page() page.Config {
	return page.Config{
		StrictAttributes: c.StrictAttributes,
		Stylesheets:      []string{c.HighlightCSS, c.Stylesheet},
		ScriptLinks:      []string{c.HighlightJS},
		InlineScripts:    []string{"hljs.highlightAll();"},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
