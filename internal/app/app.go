package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goscrape/internal/cache"
	"github.com/hyperifyio/goscrape/internal/extract"
	"github.com/hyperifyio/goscrape/internal/fetch"
	"github.com/hyperifyio/goscrape/scrape"
)

// App reads markup from a file, stdin or URL, filters it with the
// configured selector and writes the chosen rendering.
type App struct {
	cfg     Config
	fetcher *fetch.Client
}

// New validates cfg and prepares the cache and fetch client.
func New(ctx context.Context, cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg}
	if cfg.URL == "" {
		return a, nil
	}

	var httpCache *cache.HTTPCache
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			removed, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
			if err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache purge failed")
			}
			log.Debug().Int("removed", removed).Dur("max_age", cfg.CacheMaxAge).Msg("cache purged")
		}
		httpCache = &cache.HTTPCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}
	a.fetcher = &fetch.Client{
		HTTPClient:        newHTTPClient(cfg.Timeout),
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       cfg.MaxAttempts,
		RedirectMaxHops:   cfg.MaxRedirects,
		PerRequestTimeout: cfg.Timeout,
		Cache:             httpCache,
		BypassCache:       cfg.BypassCache,
	}
	return a, nil
}

// Run loads the markup, parses and filters it, and writes the rendering to
// OutputPath when set or to out otherwise. stdin is read when InputPath is
// StdinPath. Markup without any tag fails with scrape.ErrInvalidInput.
func (a *App) Run(ctx context.Context, stdin io.Reader, out io.Writer) error {
	start := time.Now()
	markup, source, err := a.load(ctx, stdin)
	if err != nil {
		return err
	}
	doc, err := scrape.Parse(markup)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	matches := doc.Find(a.cfg.Selector...)
	rendered := Render(matches, a.cfg.Mode, a.cfg.AttrName)

	log.Info().
		Str("source", source).
		Int("elements", doc.Len()).
		Strs("selector", a.cfg.Selector).
		Int("matches", matches.Len()).
		Str("mode", a.cfg.Mode).
		Dur("elapsed", time.Since(start)).
		Msg("scraped")

	if a.cfg.OutputPath != "" {
		if err := os.WriteFile(a.cfg.OutputPath, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputPath).Msg("wrote output")
		return nil
	}
	if _, err := fmt.Fprintln(out, rendered); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (a *App) load(ctx context.Context, stdin io.Reader) (markup string, source string, err error) {
	switch {
	case a.cfg.URL != "":
		markup, err = a.fetcher.FetchMarkup(ctx, a.cfg.URL)
		if err != nil {
			return "", a.cfg.URL, fmt.Errorf("fetch %s: %w", a.cfg.URL, err)
		}
		return markup, a.cfg.URL, nil
	case a.cfg.InputPath == StdinPath:
		if stdin == nil {
			stdin = os.Stdin
		}
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", "stdin", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), "stdin", nil
	default:
		b, err := os.ReadFile(a.cfg.InputPath)
		if err != nil {
			return "", a.cfg.InputPath, fmt.Errorf("read input: %w", err)
		}
		return string(b), a.cfg.InputPath, nil
	}
}

// Render returns doc rendered in mode. Unknown modes render markup.
func Render(doc scrape.Document, mode string, attr string) string {
	switch mode {
	case ModeInner:
		return doc.InnerHTML()
	case ModeText:
		return doc.Text()
	case ModeAttr:
		return doc.AttrValue(attr)
	case ModeReadable:
		return extract.Readable(doc.HTML())
	default:
		return doc.HTML()
	}
}
