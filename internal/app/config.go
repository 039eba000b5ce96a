package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperifyio/goscrape/internal/fetch"
)

// Render modes.
const (
	ModeHTML  = "html"
	ModeInner = "inner"
	ModeText  = "text"
	ModeAttr  = "attr"
	// ModeReadable renders matches as whitespace-normalized text with block
	// layout and decoded entities.
	ModeReadable = "readable"
)

// StdinPath as InputPath reads markup from standard input.
const StdinPath = "-"

const (
	DefaultMode        = ModeHTML
	DefaultUserAgent   = "goscrape/1.0 (+https://github.com/hyperifyio/goscrape)"
	DefaultTimeout     = 15 * time.Second
	DefaultMaxAttempts = 2
	// DefaultMaxRedirects caps redirects followed for one page.
	DefaultMaxRedirects = fetch.DefaultMaxRedirects
	DefaultCacheDir     = ".goscrape-cache"
)

// ErrNoInput is returned when neither a URL nor an input path is configured.
var ErrNoInput = errors.New("config: one of url or input is required")

// Config holds runtime configuration for the application.
type Config struct {
	// Source: exactly one of these.
	InputPath string
	URL       string

	// Query and rendering
	Selector   []string
	Mode       string
	AttrName   string
	OutputPath string

	// Fetch
	UserAgent    string
	Timeout      time.Duration
	MaxAttempts  int
	MaxRedirects int

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool
	BypassCache      bool

	Verbose bool
}

// DefaultConfig returns the configuration used before any file, env or flag
// is applied.
func DefaultConfig() Config {
	return Config{
		Mode:         DefaultMode,
		UserAgent:    DefaultUserAgent,
		Timeout:      DefaultTimeout,
		MaxAttempts:  DefaultMaxAttempts,
		MaxRedirects: DefaultMaxRedirects,
		CacheDir:     DefaultCacheDir,
	}
}

// ValidateConfig checks that cfg describes a runnable scrape.
func ValidateConfig(cfg Config) error {
	input := strings.TrimSpace(cfg.InputPath)
	url := strings.TrimSpace(cfg.URL)
	if input == "" && url == "" {
		return ErrNoInput
	}
	if input != "" && url != "" {
		return errors.New("config: url and input are mutually exclusive")
	}
	switch cfg.Mode {
	case ModeHTML, ModeInner, ModeText, ModeReadable:
	case ModeAttr:
		if strings.TrimSpace(cfg.AttrName) == "" {
			return errors.New("config: mode attr requires an attribute name")
		}
	default:
		return fmt.Errorf("config: unknown mode %q (want html, inner, text, readable or attr)", cfg.Mode)
	}
	if len(cfg.Selector) > 3 {
		return fmt.Errorf("config: selector takes at most 3 parts, got %d", len(cfg.Selector))
	}
	if cfg.Timeout < 0 || cfg.MaxAttempts < 0 || cfg.MaxRedirects < 0 || cfg.CacheMaxAge < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	return nil
}

// SplitList splits a comma-separated value, trimming blanks around parts.
// Empty parts are kept so ",id" still means "any tag with an id".
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
