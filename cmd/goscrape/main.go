package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/goscrape/internal/app"
	"github.com/hyperifyio/goscrape/scrape"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("scrape failed")
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when the input held no markup at all and 1 for anything else.
func exitCode(err error) int {
	if errors.Is(err, scrape.ErrInvalidInput) {
		return 2
	}
	return 1
}

type options struct {
	input       string
	url         string
	mode        string
	attr        string
	output      string
	configPath  string
	envFiles    []string
	userAgent   string
	timeout     time.Duration
	maxAttempts int
	maxRedirect int
	cacheDir    string
	cacheMaxAge time.Duration
	cacheClear  bool
	cacheStrict bool
	bypassCache bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "goscrape [tag [attribute [value]]]",
		Short: "Extract elements from HTML by tag, attribute and value",
		Long: `Reads HTML from a file, stdin or a URL, keeps the elements matching the
selector and prints their markup, inner markup, text or attribute values.
An empty or "*" selector part matches anything.`,
		Example: `  goscrape -i page.html div id hello
  curl -s https://example.com | goscrape -i - -m text h1
  goscrape -u https://example.com -m attr --attr href a href`,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", `Path to an HTML file, or "-" for stdin`)
	f.StringVarP(&opts.url, "url", "u", "", "URL to fetch the HTML from")
	f.StringVarP(&opts.mode, "mode", "m", app.DefaultMode, "Output: html, inner, text, readable or attr")
	f.StringVar(&opts.attr, "attr", "", "Attribute to print with --mode attr")
	f.StringVarP(&opts.output, "output", "o", "", "Write the result to this file instead of stdout")
	f.StringVar(&opts.configPath, "config", "", "YAML or JSON config file")
	f.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "Dotenv files to load before reading GOSCRAPE_* variables")
	f.StringVar(&opts.userAgent, "user-agent", app.DefaultUserAgent, "User-Agent for fetches")
	f.DurationVar(&opts.timeout, "timeout", app.DefaultTimeout, "Timeout per fetch attempt")
	f.IntVar(&opts.maxAttempts, "max-attempts", app.DefaultMaxAttempts, "Fetch attempts including the first")
	f.IntVar(&opts.maxRedirect, "max-redirects", app.DefaultMaxRedirects, "Redirects to follow before giving up")
	f.StringVar(&opts.cacheDir, "cache.dir", app.DefaultCacheDir, `HTTP cache directory; "" disables caching`)
	f.DurationVar(&opts.cacheMaxAge, "cache.maxAge", 0, "Purge cache entries older than this before fetching; 0 disables")
	f.BoolVar(&opts.cacheClear, "cache.clear", false, "Clear the cache directory before fetching")
	f.BoolVar(&opts.cacheStrict, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	f.BoolVar(&opts.bypassCache, "cache.bypass", false, "Always fetch fresh, still saving the response")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(app.VersionString())
		},
	})
	return cmd
}

func runScrape(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts, args)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}

// loadConfig layers defaults, the config file, GOSCRAPE_* variables and the
// flags that were set explicitly, in that order of increasing precedence.
// Positional arguments replace any configured selector.
func loadConfig(cmd *cobra.Command, opts *options, args []string) (app.Config, error) {
	if err := app.LoadEnvFiles(opts.envFiles...); err != nil {
		return app.Config{}, fmt.Errorf("load env files: %w", err)
	}
	cfg := app.DefaultConfig()
	if opts.configPath != "" {
		fc, err := app.LoadConfigFile(opts.configPath)
		if err != nil {
			return app.Config{}, fmt.Errorf("load config %s: %w", opts.configPath, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	f := cmd.Flags()
	if f.Changed("input") {
		cfg.InputPath = opts.input
	}
	if f.Changed("url") {
		cfg.URL = opts.url
	}
	if f.Changed("mode") {
		cfg.Mode = opts.mode
	}
	if f.Changed("attr") {
		cfg.AttrName = opts.attr
	}
	if f.Changed("output") {
		cfg.OutputPath = opts.output
	}
	if f.Changed("user-agent") {
		cfg.UserAgent = opts.userAgent
	}
	if f.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if f.Changed("max-attempts") {
		cfg.MaxAttempts = opts.maxAttempts
	}
	if f.Changed("max-redirects") {
		cfg.MaxRedirects = opts.maxRedirect
	}
	if f.Changed("cache.dir") {
		cfg.CacheDir = opts.cacheDir
	}
	if f.Changed("cache.maxAge") {
		cfg.CacheMaxAge = opts.cacheMaxAge
	}
	if f.Changed("cache.clear") {
		cfg.CacheClear = opts.cacheClear
	}
	if f.Changed("cache.strictPerms") {
		cfg.CacheStrictPerms = opts.cacheStrict
	}
	if f.Changed("cache.bypass") {
		cfg.BypassCache = opts.bypassCache
	}
	if f.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if len(args) > 0 {
		cfg.Selector = append([]string{}, args...)
	}
	return cfg, nil
}
